package service

import (
	"context"
	"errors"
	"log"
	"time"

	"securefinance-backend/email"
	"securefinance-backend/models"

	"github.com/google/uuid"
)

// RequestMarker flips document requests to sent after a confirmed dispatch
type RequestMarker interface {
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}

// DispatchService sends consolidated document request emails and records
// which requests went out
type DispatchService struct {
	requests RequestMarker
	mailer   email.Mailer
}

// DispatchServiceOption is a functional option for DispatchService
type DispatchServiceOption func(*DispatchService)

// DispatchWithRequestMarker sets the request store
func DispatchWithRequestMarker(requests RequestMarker) DispatchServiceOption {
	return func(s *DispatchService) {
		s.requests = requests
	}
}

// DispatchWithMailer sets the mailer
func DispatchWithMailer(mailer email.Mailer) DispatchServiceOption {
	return func(s *DispatchService) {
		s.mailer = mailer
	}
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(opts ...DispatchServiceOption) *DispatchService {
	s := &DispatchService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendDocumentRequestRequest carries the snapshot a dispatch operates on.
// The caller fetches assignments, categories and requests in one load; the
// service never re-reads state mid-flight.
type SendDocumentRequestRequest struct {
	Client      *models.Client
	Assignments []*models.ClientDocumentAssignment
	Categories  []*models.DocumentCategory
	Requests    []*models.DocumentRequest
	Preface     string
	ReplyTo     string
	Now         time.Time
}

// SendDocumentRequestResult reports what went out
type SendDocumentRequestResult struct {
	ItemCount  int    `json:"item_count"`
	MarkedSent int    `json:"marked_sent"`
	Simulated  bool   `json:"simulated"`
	Message    string `json:"message,omitempty"`
}

// SendDocumentRequest aggregates, mails and records a document request.
// Requests transition to sent only after the mailer confirms delivery;
// a simulated delivery (test mode) counts as confirmed. The per-request
// status updates are best-effort: a failing update does not roll back the
// ones already applied.
func (s *DispatchService) SendDocumentRequest(ctx context.Context, req SendDocumentRequestRequest) (*SendDocumentRequestResult, error) {
	if s.requests == nil {
		return nil, errors.New("request store not set")
	}
	if s.mailer == nil {
		return nil, errors.New("mailer not set")
	}

	plan, err := PrepareDispatch(req.Client, req.Assignments, req.Categories, req.Requests, req.Preface)
	if err != nil {
		return nil, err
	}

	sendResult, err := s.mailer.Send(ctx, email.Message{
		To:      plan.To,
		Subject: plan.Subject,
		HTML:    plan.HTML,
		ReplyTo: req.ReplyTo,
	})
	if err != nil {
		return nil, err
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	marked := 0
	for _, id := range plan.PendingRequestIDs {
		if err := s.requests.MarkSent(ctx, id, now); err != nil {
			log.Printf("Failed to mark request %s as sent: %v", id, err)
			return &SendDocumentRequestResult{
				ItemCount:  len(plan.Items),
				MarkedSent: marked,
				Simulated:  sendResult.Simulated,
			}, err
		}
		marked++
	}

	return &SendDocumentRequestResult{
		ItemCount:  len(plan.Items),
		MarkedSent: marked,
		Simulated:  sendResult.Simulated,
		Message:    sendResult.Message,
	}, nil
}
