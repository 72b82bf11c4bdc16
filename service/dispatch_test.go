package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"securefinance-backend/email"
	"securefinance-backend/models"

	"github.com/google/uuid"
)

type fakeMailer struct {
	sent   []email.Message
	result *email.SendResult
	err    error
}

func (m *fakeMailer) Send(ctx context.Context, msg email.Message) (*email.SendResult, error) {
	m.sent = append(m.sent, msg)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &email.SendResult{ID: "email-1"}, nil
}

type fakeMarker struct {
	marked  map[uuid.UUID]time.Time
	failOn  uuid.UUID
	failErr error
}

func newFakeMarker() *fakeMarker {
	return &fakeMarker{marked: make(map[uuid.UUID]time.Time)}
}

func (m *fakeMarker) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	if m.failErr != nil && id == m.failOn {
		return m.failErr
	}
	m.marked[id] = sentAt
	return nil
}

func pendingRequest(clientID uuid.UUID, title string) *models.DocumentRequest {
	return &models.DocumentRequest{
		ID:       uuid.New(),
		ClientID: clientID,
		Title:    title,
		Status:   models.RequestPending,
	}
}

func TestBuildDeliverablesMergesAssignmentsAndPendingRequests(t *testing.T) {
	client := testClient("piet@jansen.nl")
	cat := testCategory("BTW Q2 2025")
	deadline := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	assignments := []*models.ClientDocumentAssignment{
		assignmentFor(client, cat, &deadline),
	}

	sent := pendingRequest(client.ID, "Oude bankafschriften")
	sent.Status = models.RequestSent
	requests := []*models.DocumentRequest{
		pendingRequest(client.ID, "Kilometerregistratie"),
		sent,
	}

	items := BuildDeliverables(assignments, []*models.DocumentCategory{cat}, requests)
	if len(items) != 2 {
		t.Fatalf("expected 2 deliverables (1 assignment + 1 pending), got %d", len(items))
	}

	if items[0].Title != "BTW Q2 2025" {
		t.Errorf("expected assignment first, got %q", items[0].Title)
	}
	if items[0].Description != "BTW aangifte" {
		t.Errorf("expected category type label, got %q", items[0].Description)
	}
	if items[0].DeadlineText != "31 juli 2025" {
		t.Errorf("expected Dutch deadline, got %q", items[0].DeadlineText)
	}

	if items[1].Title != "Kilometerregistratie" {
		t.Errorf("expected pending request second, got %q", items[1].Title)
	}
	if items[1].Description != "-" {
		t.Errorf("expected placeholder description, got %q", items[1].Description)
	}
	if items[1].DeadlineText != "Geen deadline" {
		t.Errorf("expected no-deadline text, got %q", items[1].DeadlineText)
	}
}

func TestPrepareDispatchRequiresContactEmail(t *testing.T) {
	client := testClient("")
	cat := testCategory("BTW Q1")
	assignments := []*models.ClientDocumentAssignment{
		assignmentFor(client, cat, nil),
	}

	_, err := PrepareDispatch(client, assignments, []*models.DocumentCategory{cat}, nil, "")
	if !errors.Is(err, ErrNoContactEmail) {
		t.Fatalf("expected ErrNoContactEmail, got %v", err)
	}
}

func TestPrepareDispatchRejectsEmptyList(t *testing.T) {
	client := testClient("piet@jansen.nl")

	// A sent request does not count as something to ask for.
	sent := pendingRequest(client.ID, "Al verstuurd")
	sent.Status = models.RequestSent

	_, err := PrepareDispatch(client, nil, nil, []*models.DocumentRequest{sent}, "")
	if !errors.Is(err, ErrNothingToRequest) {
		t.Fatalf("expected ErrNothingToRequest, got %v", err)
	}
}

func TestPrepareDispatchRendersEmail(t *testing.T) {
	client := testClient("piet@jansen.nl")
	cat := testCategory("Jaarrekening 2024")
	cat.CategoryType = models.CategoryAnnualReport
	assignments := []*models.ClientDocumentAssignment{
		assignmentFor(client, cat, nil),
	}

	plan, err := PrepareDispatch(client, assignments, []*models.DocumentCategory{cat}, nil, "Graag voor eind van de maand.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.To != "piet@jansen.nl" {
		t.Errorf("expected recipient piet@jansen.nl, got %q", plan.To)
	}
	if plan.Subject != "Aan te leveren documenten - Bakkerij Jansen BV" {
		t.Errorf("unexpected subject %q", plan.Subject)
	}
	for _, want := range []string{"Beste Piet Jansen", "Graag voor eind van de maand.", "Jaarrekening 2024", "Met vriendelijke groet"} {
		if !strings.Contains(plan.HTML, want) {
			t.Errorf("email body missing %q", want)
		}
	}
}

func TestSendDocumentRequestMarksPendingAfterDelivery(t *testing.T) {
	client := testClient("piet@jansen.nl")
	reqA := pendingRequest(client.ID, "Bankafschriften Q1")
	reqB := pendingRequest(client.ID, "Inkoopfacturen Q1")
	alreadySent := pendingRequest(client.ID, "Oude stukken")
	alreadySent.Status = models.RequestSent

	mailer := &fakeMailer{}
	marker := newFakeMarker()
	svc := NewDispatchService(
		DispatchWithRequestMarker(marker),
		DispatchWithMailer(mailer),
	)

	now := time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	result, err := svc.SendDocumentRequest(context.Background(), SendDocumentRequestRequest{
		Client:   client,
		Requests: []*models.DocumentRequest{reqA, reqB, alreadySent},
		Now:      now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected exactly one email, got %d", len(mailer.sent))
	}
	if result.ItemCount != 2 {
		t.Errorf("expected 2 items, got %d", result.ItemCount)
	}
	if result.MarkedSent != 2 {
		t.Errorf("expected 2 requests marked sent, got %d", result.MarkedSent)
	}
	if _, ok := marker.marked[alreadySent.ID]; ok {
		t.Error("already-sent request must not be re-marked")
	}
	if got := marker.marked[reqA.ID]; !got.Equal(now) {
		t.Errorf("expected sent_at %v, got %v", now, got)
	}
}

func TestSendDocumentRequestMailerFailureMarksNothing(t *testing.T) {
	client := testClient("piet@jansen.nl")
	req := pendingRequest(client.ID, "Bankafschriften Q1")

	mailer := &fakeMailer{err: errors.New("provider down")}
	marker := newFakeMarker()
	svc := NewDispatchService(
		DispatchWithRequestMarker(marker),
		DispatchWithMailer(mailer),
	)

	_, err := svc.SendDocumentRequest(context.Background(), SendDocumentRequestRequest{
		Client:   client,
		Requests: []*models.DocumentRequest{req},
	})
	if err == nil {
		t.Fatal("expected error from failing mailer")
	}
	if len(marker.marked) != 0 {
		t.Errorf("no request may transition to sent on delivery failure, got %d", len(marker.marked))
	}
}

func TestSendDocumentRequestValidatesBeforeMailing(t *testing.T) {
	client := testClient("piet@jansen.nl")

	mailer := &fakeMailer{}
	svc := NewDispatchService(
		DispatchWithRequestMarker(newFakeMarker()),
		DispatchWithMailer(mailer),
	)

	_, err := svc.SendDocumentRequest(context.Background(), SendDocumentRequestRequest{
		Client: client,
	})
	if !errors.Is(err, ErrNothingToRequest) {
		t.Fatalf("expected ErrNothingToRequest, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("mailer must not be called when validation fails")
	}
}

func TestSendDocumentRequestSimulatedCountsAsDelivered(t *testing.T) {
	client := testClient("piet@jansen.nl")
	req := pendingRequest(client.ID, "Bankafschriften Q1")

	mailer := &fakeMailer{result: &email.SendResult{Simulated: true, Message: "Test-modus: email niet echt verstuurd"}}
	marker := newFakeMarker()
	svc := NewDispatchService(
		DispatchWithRequestMarker(marker),
		DispatchWithMailer(mailer),
	)

	result, err := svc.SendDocumentRequest(context.Background(), SendDocumentRequestRequest{
		Client:   client,
		Requests: []*models.DocumentRequest{req},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Simulated {
		t.Error("expected simulated result")
	}
	if result.MarkedSent != 1 {
		t.Errorf("simulated delivery must still mark requests sent, got %d", result.MarkedSent)
	}
}

func TestSendDocumentRequestPartialMarkFailure(t *testing.T) {
	client := testClient("piet@jansen.nl")
	reqA := pendingRequest(client.ID, "Bankafschriften Q1")
	reqB := pendingRequest(client.ID, "Inkoopfacturen Q1")

	marker := newFakeMarker()
	marker.failOn = reqB.ID
	marker.failErr = errors.New("row gone")

	svc := NewDispatchService(
		DispatchWithRequestMarker(marker),
		DispatchWithMailer(&fakeMailer{}),
	)

	result, err := svc.SendDocumentRequest(context.Background(), SendDocumentRequestRequest{
		Client:   client,
		Requests: []*models.DocumentRequest{reqA, reqB},
	})
	if err == nil {
		t.Fatal("expected error from failing marker")
	}
	if result == nil {
		t.Fatal("partial result expected alongside the error")
	}
	if result.MarkedSent != 1 {
		t.Errorf("expected 1 confirmed mark before the failure, got %d", result.MarkedSent)
	}
}
