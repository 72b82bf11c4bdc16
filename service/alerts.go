package service

import (
	"fmt"
	"strings"
	"time"

	"securefinance-backend/models"

	"github.com/google/uuid"
)

// AlertKind represents the severity of a dashboard alert
type AlertKind string

const (
	AlertError   AlertKind = "error"
	AlertWarning AlertKind = "warning"
	AlertInfo    AlertKind = "info"
	AlertSuccess AlertKind = "success"
)

// Alert is one action-required signal shown on the client detail view
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

// upcomingWindow is how far ahead a deadline counts as "due soon"
const upcomingWindow = 7 * 24 * time.Hour

// BuildClientAlerts derives the alert list for a client from a snapshot of
// its assignments and the current category list. Pure function: callers
// re-evaluate it after every assignment or category change.
//
// Alerts come out in a fixed order: overdue, due within a week, missing
// deadline, missing contact email, and a single success alert when nothing
// else applies. The result is never empty.
func BuildClientAlerts(client *models.Client, assignments []*models.ClientDocumentAssignment, categories []*models.DocumentCategory, now time.Time) []Alert {
	byID := make(map[uuid.UUID]*models.DocumentCategory, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	var overdue, upcoming, noDeadline []*models.ClientDocumentAssignment
	for _, a := range assignments {
		switch {
		case a.Deadline == nil:
			noDeadline = append(noDeadline, a)
		case a.Deadline.Before(now):
			overdue = append(overdue, a)
		case !a.Deadline.After(now.Add(upcomingWindow)):
			upcoming = append(upcoming, a)
		}
	}

	var alerts []Alert

	if len(overdue) > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertError,
			Message: fmt.Sprintf("%s verstreken: %s", countDeadlines(len(overdue)), categoryNames(overdue, byID)),
		})
	}
	if len(upcoming) > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertWarning,
			Message: fmt.Sprintf("%s binnen 7 dagen: %s", countDeadlines(len(upcoming)), categoryNames(upcoming, byID)),
		})
	}
	if len(noDeadline) > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertInfo,
			Message: fmt.Sprintf("Geen deadline ingesteld voor: %s", categoryNames(noDeadline, byID)),
		})
	}
	if !client.HasContactEmail() && len(assignments) > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertInfo,
			Message: "Deze klant heeft geen contactemail. Voeg een emailadres toe om documentverzoeken te kunnen versturen.",
		})
	}

	if len(alerts) == 0 {
		if len(assignments) == 0 {
			alerts = append(alerts, Alert{
				Kind:    AlertSuccess,
				Message: "Nieuwe klant: wijs documentcategorieën toe om te starten.",
			})
		} else {
			alerts = append(alerts, Alert{
				Kind:    AlertSuccess,
				Message: "Alles op orde: geen openstaande acties.",
			})
		}
	}

	return alerts
}

func countDeadlines(n int) string {
	if n == 1 {
		return "1 deadline"
	}
	return fmt.Sprintf("%d deadlines", n)
}

// categoryNames joins the resolved category names of the given assignments.
// Assignments whose category was deleted concurrently are left out of the
// name list; the counts above still include them.
func categoryNames(assignments []*models.ClientDocumentAssignment, byID map[uuid.UUID]*models.DocumentCategory) string {
	var names []string
	for _, a := range assignments {
		if cat, ok := byID[a.CategoryID]; ok {
			names = append(names, cat.Name)
		}
	}
	return strings.Join(names, ", ")
}
