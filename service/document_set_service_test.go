package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"securefinance-backend/models"

	"github.com/google/uuid"
)

type fakeSetReader struct {
	set   *models.DocumentSet
	items []*models.DocumentSetItem
}

func (r *fakeSetReader) GetSetByID(ctx context.Context, id uuid.UUID) (*models.DocumentSet, error) {
	if r.set == nil || r.set.ID != id {
		return nil, errors.New("no rows in result set")
	}
	return r.set, nil
}

func (r *fakeSetReader) ListItemsBySetID(ctx context.Context, setID uuid.UUID) ([]*models.DocumentSetItem, error) {
	return r.items, nil
}

type fakeRequestCreator struct {
	created   []*models.DocumentRequest
	failAfter int // fail on the insert with this index; -1 disables
}

func (c *fakeRequestCreator) Create(ctx context.Context, request *models.DocumentRequest) error {
	if c.failAfter >= 0 && len(c.created) == c.failAfter {
		return errors.New("insert failed")
	}
	request.ID = uuid.New()
	c.created = append(c.created, request)
	return nil
}

func setItem(setID uuid.UUID, title string, order int) *models.DocumentSetItem {
	return &models.DocumentSetItem{
		ID:        uuid.New(),
		SetID:     setID,
		Title:     title,
		SortOrder: order,
	}
}

func newSetFixture(name string, titles ...string) (*fakeSetReader, *models.DocumentSet) {
	set := &models.DocumentSet{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: uuid.New(),
	}
	reader := &fakeSetReader{set: set}
	for i, title := range titles {
		reader.items = append(reader.items, setItem(set.ID, title, i))
	}
	return reader, set
}

func TestExpandSetCreatesPendingRequests(t *testing.T) {
	setID := uuid.New()
	clientID := uuid.New()
	createdBy := uuid.New()
	deadline := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	items := []*models.DocumentSetItem{
		setItem(setID, "Jaaropgave", 0),
		setItem(setID, "Hypotheekoverzicht", 1),
		setItem(setID, "WOZ beschikking", 2),
	}

	requests, err := ExpandSet(items, clientID, &deadline, createdBy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(requests))
	}

	for i, req := range requests {
		if req.Title != items[i].Title {
			t.Errorf("request %d: expected title %q, got %q", i, items[i].Title, req.Title)
		}
		if req.Status != models.RequestPending {
			t.Errorf("request %d: expected pending status, got %s", i, req.Status)
		}
		if req.ClientID != clientID {
			t.Errorf("request %d: wrong client", i)
		}
		if req.Deadline == nil || !req.Deadline.Equal(deadline) {
			t.Errorf("request %d: expected shared deadline %v, got %v", i, deadline, req.Deadline)
		}
		if req.CreatedBy != createdBy {
			t.Errorf("request %d: wrong creator", i)
		}
	}
}

func TestExpandSetRejectsEmptySet(t *testing.T) {
	_, err := ExpandSet(nil, uuid.New(), nil, uuid.New())
	if !errors.Is(err, ErrEmptySet) {
		t.Fatalf("expected ErrEmptySet, got %v", err)
	}
}

func TestApplySetCreatesRequestsPerItem(t *testing.T) {
	reader, set := newSetFixture("IB Aangifte", "Jaaropgave", "Hypotheekoverzicht")
	creator := &fakeRequestCreator{failAfter: -1}
	svc := NewDocumentSetService(
		SetsWithSetReader(reader),
		SetsWithRequestCreator(creator),
	)

	clientID := uuid.New()
	result, err := svc.ApplySet(context.Background(), ApplySetRequest{
		SetID:     set.ID,
		ClientID:  clientID,
		CreatedBy: set.CreatedBy,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SetName != "IB Aangifte" {
		t.Errorf("expected set name in result, got %q", result.SetName)
	}
	if result.Created != 2 {
		t.Errorf("expected 2 created, got %d", result.Created)
	}
	if len(creator.created) != 2 {
		t.Fatalf("expected 2 persisted requests, got %d", len(creator.created))
	}
	for _, req := range creator.created {
		if req.ClientID != clientID {
			t.Error("request created for wrong client")
		}
	}
}

func TestApplySetTwiceDuplicates(t *testing.T) {
	reader, set := newSetFixture("Kwartaalafsluiting", "Bankafschriften", "Verkoopfacturen", "Inkoopfacturen")
	creator := &fakeRequestCreator{failAfter: -1}
	svc := NewDocumentSetService(
		SetsWithSetReader(reader),
		SetsWithRequestCreator(creator),
	)

	req := ApplySetRequest{SetID: set.ID, ClientID: uuid.New(), CreatedBy: set.CreatedBy}
	for i := 0; i < 2; i++ {
		if _, err := svc.ApplySet(context.Background(), req); err != nil {
			t.Fatalf("apply %d: unexpected error: %v", i, err)
		}
	}

	// Sets are templates: the second apply adds a full second batch.
	if len(creator.created) != 6 {
		t.Errorf("expected 6 requests after applying twice, got %d", len(creator.created))
	}
}

func TestApplySetEmptySetCreatesNothing(t *testing.T) {
	reader, set := newSetFixture("Leeg")
	creator := &fakeRequestCreator{failAfter: -1}
	svc := NewDocumentSetService(
		SetsWithSetReader(reader),
		SetsWithRequestCreator(creator),
	)

	_, err := svc.ApplySet(context.Background(), ApplySetRequest{
		SetID:     set.ID,
		ClientID:  uuid.New(),
		CreatedBy: set.CreatedBy,
	})
	if !errors.Is(err, ErrEmptySet) {
		t.Fatalf("expected ErrEmptySet, got %v", err)
	}
	if len(creator.created) != 0 {
		t.Errorf("empty set must create zero requests, got %d", len(creator.created))
	}
}

func TestApplySetUnknownSet(t *testing.T) {
	reader, _ := newSetFixture("Bestaat", "Item")
	svc := NewDocumentSetService(
		SetsWithSetReader(reader),
		SetsWithRequestCreator(&fakeRequestCreator{failAfter: -1}),
	)

	_, err := svc.ApplySet(context.Background(), ApplySetRequest{
		SetID:     uuid.New(),
		ClientID:  uuid.New(),
		CreatedBy: uuid.New(),
	})
	if !errors.Is(err, ErrSetNotFound) {
		t.Fatalf("expected ErrSetNotFound, got %v", err)
	}
}

func TestApplySetMidSequenceFailureKeepsEarlierRows(t *testing.T) {
	reader, set := newSetFixture("Kwartaalafsluiting", "Bankafschriften", "Verkoopfacturen", "Inkoopfacturen")
	creator := &fakeRequestCreator{failAfter: 2}
	svc := NewDocumentSetService(
		SetsWithSetReader(reader),
		SetsWithRequestCreator(creator),
	)

	result, err := svc.ApplySet(context.Background(), ApplySetRequest{
		SetID:     set.ID,
		ClientID:  uuid.New(),
		CreatedBy: set.CreatedBy,
	})
	if err == nil {
		t.Fatal("expected error from failing insert")
	}
	if result == nil {
		t.Fatal("partial result expected alongside the error")
	}
	if result.Created != 2 {
		t.Errorf("expected 2 confirmed rows before the failure, got %d", result.Created)
	}
	if len(creator.created) != 2 {
		t.Errorf("earlier rows must stay in place, got %d", len(creator.created))
	}
}
