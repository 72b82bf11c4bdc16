package service

import (
	"context"
	"errors"
	"time"

	"securefinance-backend/models"

	"github.com/google/uuid"
)

var (
	ErrEmptySet    = errors.New("documentset bevat geen items")
	ErrSetNotFound = errors.New("documentset niet gevonden")
)

// SetReader loads a document set and its items
type SetReader interface {
	GetSetByID(ctx context.Context, id uuid.UUID) (*models.DocumentSet, error)
	ListItemsBySetID(ctx context.Context, setID uuid.UUID) ([]*models.DocumentSetItem, error)
}

// RequestCreator persists new document requests
type RequestCreator interface {
	Create(ctx context.Context, request *models.DocumentRequest) error
}

// DocumentSetService applies reusable document set templates to clients
type DocumentSetService struct {
	sets     SetReader
	requests RequestCreator
}

// DocumentSetServiceOption is a functional option for DocumentSetService
type DocumentSetServiceOption func(*DocumentSetService)

// SetsWithSetReader sets the set store
func SetsWithSetReader(sets SetReader) DocumentSetServiceOption {
	return func(s *DocumentSetService) {
		s.sets = sets
	}
}

// SetsWithRequestCreator sets the request store
func SetsWithRequestCreator(requests RequestCreator) DocumentSetServiceOption {
	return func(s *DocumentSetService) {
		s.requests = requests
	}
}

// NewDocumentSetService creates a new document set service
func NewDocumentSetService(opts ...DocumentSetServiceOption) *DocumentSetService {
	s := &DocumentSetService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpandSet turns the items of a set into fresh pending document requests
// for a client, in stored sort order, all sharing one deadline. Pure; the
// caller persists the result. An empty set is a user-input error.
func ExpandSet(items []*models.DocumentSetItem, clientID uuid.UUID, deadline *time.Time, createdBy uuid.UUID) ([]*models.DocumentRequest, error) {
	if len(items) == 0 {
		return nil, ErrEmptySet
	}

	requests := make([]*models.DocumentRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, &models.DocumentRequest{
			ClientID:    clientID,
			Title:       item.Title,
			Description: item.Description,
			Deadline:    deadline,
			Status:      models.RequestPending,
			CreatedBy:   createdBy,
		})
	}

	return requests, nil
}

// ApplySetRequest represents a request to apply a set to a client
type ApplySetRequest struct {
	SetID     uuid.UUID
	ClientID  uuid.UUID
	Deadline  *time.Time
	CreatedBy uuid.UUID
}

// ApplySetResult reports what was created, for the confirmation display
type ApplySetResult struct {
	SetName string `json:"set_name"`
	Created int    `json:"created"`
}

// ApplySet expands every item of a set into a pending document request for
// the client. Applying the same set twice creates duplicates on purpose:
// sets are templates, not singletons. Inserts are per-item with no
// transaction; a mid-sequence failure leaves earlier rows in place and the
// result counts only confirmed rows.
func (s *DocumentSetService) ApplySet(ctx context.Context, req ApplySetRequest) (*ApplySetResult, error) {
	if s.sets == nil {
		return nil, errors.New("set store not set")
	}
	if s.requests == nil {
		return nil, errors.New("request store not set")
	}

	set, err := s.sets.GetSetByID(ctx, req.SetID)
	if err != nil {
		return nil, ErrSetNotFound
	}

	items, err := s.sets.ListItemsBySetID(ctx, req.SetID)
	if err != nil {
		return nil, err
	}

	requests, err := ExpandSet(items, req.ClientID, req.Deadline, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, request := range requests {
		if err := s.requests.Create(ctx, request); err != nil {
			return &ApplySetResult{SetName: set.Name, Created: created}, err
		}
		created++
	}

	return &ApplySetResult{SetName: set.Name, Created: created}, nil
}
