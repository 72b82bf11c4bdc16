package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"securefinance-backend/models"

	"github.com/google/uuid"
)

var (
	ErrNoContactEmail   = errors.New("klant heeft geen contactemail")
	ErrNothingToRequest = errors.New("geen documenten om op te vragen")
)

// Deliverable is one line item in an outbound document request email
type Deliverable struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DeadlineText string `json:"deadline_text"`
}

// BuildDeliverables flattens a client's category assignments and pending
// document requests into one notification list. Assignments come first in
// their existing order, then pending requests in theirs; no re-sorting by
// date. Requests that were already sent are never re-included.
func BuildDeliverables(assignments []*models.ClientDocumentAssignment, categories []*models.DocumentCategory, requests []*models.DocumentRequest) []Deliverable {
	byID := make(map[uuid.UUID]*models.DocumentCategory, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	var items []Deliverable
	for _, a := range assignments {
		cat, ok := byID[a.CategoryID]
		if !ok {
			// Category deleted concurrently; nothing sensible to request.
			continue
		}
		items = append(items, Deliverable{
			Title:        cat.Name,
			Description:  cat.CategoryType.Label(),
			DeadlineText: DeadlineText(a.Deadline),
		})
	}

	for _, req := range requests {
		if req.Status != models.RequestPending {
			continue
		}
		description := "-"
		if req.Description != nil && *req.Description != "" {
			description = *req.Description
		}
		items = append(items, Deliverable{
			Title:        req.Title,
			Description:  description,
			DeadlineText: DeadlineText(req.Deadline),
		})
	}

	return items
}

// DispatchPlan is the fully rendered outcome of aggregation, ready to hand
// to the mailer. PendingRequestIDs are the requests to flip to sent once
// delivery is confirmed.
type DispatchPlan struct {
	To                string
	Subject           string
	HTML              string
	Items             []Deliverable
	PendingRequestIDs []uuid.UUID
}

// PrepareDispatch validates and renders a document request email from a
// snapshot of the client's assignments and requests. Validation failures
// (no contact email, nothing to request) surface before any collaborator
// call is made.
func PrepareDispatch(client *models.Client, assignments []*models.ClientDocumentAssignment, categories []*models.DocumentCategory, requests []*models.DocumentRequest, preface string) (*DispatchPlan, error) {
	if !client.HasContactEmail() {
		return nil, ErrNoContactEmail
	}

	items := BuildDeliverables(assignments, categories, requests)
	if len(items) == 0 {
		return nil, ErrNothingToRequest
	}

	var pendingIDs []uuid.UUID
	for _, req := range requests {
		if req.Status == models.RequestPending {
			pendingIDs = append(pendingIDs, req.ID)
		}
	}

	return &DispatchPlan{
		To:                *client.Email,
		Subject:           fmt.Sprintf("Aan te leveren documenten - %s", client.CompanyName),
		HTML:              renderDispatchHTML(client.ContactPerson, preface, items),
		Items:             items,
		PendingRequestIDs: pendingIDs,
	}, nil
}

func renderDispatchHTML(contactPerson, preface string, items []Deliverable) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px;">`)
	fmt.Fprintf(&b, "<p>Beste %s,</p>", html.EscapeString(contactPerson))

	if preface != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(preface))
	}

	b.WriteString("<p>Graag ontvangen wij de volgende documenten van u:</p>")
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
	b.WriteString(`<tr><th align="left">Document</th><th align="left">Omschrijving</th><th align="left">Deadline</th></tr>`)
	for _, item := range items {
		fmt.Fprintf(&b, `<tr><td style="padding: 4px 8px 4px 0;">%s</td><td style="padding: 4px 8px 4px 0;">%s</td><td style="padding: 4px 0;">%s</td></tr>`,
			html.EscapeString(item.Title),
			html.EscapeString(item.Description),
			html.EscapeString(item.DeadlineText),
		)
	}
	b.WriteString("</table>")
	b.WriteString("<p>U kunt de documenten uploaden via het klantportaal.</p>")
	b.WriteString("<p>Met vriendelijke groet,<br>Secure Finance</p>")
	b.WriteString("</div>")

	return b.String()
}
