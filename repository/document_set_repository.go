package repository

import (
	"context"

	"securefinance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentSetRepository handles database operations for document sets and their items
type DocumentSetRepository struct {
	db *pgxpool.Pool
}

// NewDocumentSetRepository creates a new document set repository
func NewDocumentSetRepository(db *pgxpool.Pool) *DocumentSetRepository {
	return &DocumentSetRepository{db: db}
}

// CreateSet creates a new document set
func (r *DocumentSetRepository) CreateSet(ctx context.Context, set *models.DocumentSet) error {
	query := `
		INSERT INTO document_sets (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		set.Name,
		set.Description,
		set.CreatedBy,
	).Scan(&set.ID, &set.CreatedAt)

	return err
}

// GetSetByID retrieves a document set by ID
func (r *DocumentSetRepository) GetSetByID(ctx context.Context, id uuid.UUID) (*models.DocumentSet, error) {
	set := &models.DocumentSet{}
	query := `
		SELECT id, name, description, created_by, created_at
		FROM document_sets
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&set.ID,
		&set.Name,
		&set.Description,
		&set.CreatedBy,
		&set.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return set, nil
}

// ListSets retrieves all document sets ordered by name
func (r *DocumentSetRepository) ListSets(ctx context.Context) ([]*models.DocumentSet, error) {
	query := `
		SELECT id, name, description, created_by, created_at
		FROM document_sets
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []*models.DocumentSet
	for rows.Next() {
		set := &models.DocumentSet{}
		err := rows.Scan(
			&set.ID,
			&set.Name,
			&set.Description,
			&set.CreatedBy,
			&set.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	return sets, rows.Err()
}

// DeleteSet deletes a document set. Items must be deleted first; the
// schema does not cascade.
func (r *DocumentSetRepository) DeleteSet(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM document_sets WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// CreateItem creates a new item within a set
func (r *DocumentSetRepository) CreateItem(ctx context.Context, item *models.DocumentSetItem) error {
	query := `
		INSERT INTO document_set_items (set_id, title, description, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRow(
		ctx, query,
		item.SetID,
		item.Title,
		item.Description,
		item.SortOrder,
	).Scan(&item.ID)

	return err
}

// ListItemsBySetID retrieves the items of a set in stored sort order
func (r *DocumentSetRepository) ListItemsBySetID(ctx context.Context, setID uuid.UUID) ([]*models.DocumentSetItem, error) {
	query := `
		SELECT id, set_id, title, description, sort_order
		FROM document_set_items
		WHERE set_id = $1
		ORDER BY sort_order`

	rows, err := r.db.Query(ctx, query, setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSetItems(rows)
}

// ListItems retrieves all set items across all sets, in stored sort order
func (r *DocumentSetRepository) ListItems(ctx context.Context) ([]*models.DocumentSetItem, error) {
	query := `
		SELECT id, set_id, title, description, sort_order
		FROM document_set_items
		ORDER BY set_id, sort_order`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSetItems(rows)
}

// DeleteItem deletes a single set item
func (r *DocumentSetRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM document_set_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// DeleteItemsBySetID deletes all items of a set
func (r *DocumentSetRepository) DeleteItemsBySetID(ctx context.Context, setID uuid.UUID) error {
	query := `DELETE FROM document_set_items WHERE set_id = $1`
	_, err := r.db.Exec(ctx, query, setID)
	return err
}

func scanSetItems(rows pgx.Rows) ([]*models.DocumentSetItem, error) {
	var items []*models.DocumentSetItem
	for rows.Next() {
		item := &models.DocumentSetItem{}
		err := rows.Scan(
			&item.ID,
			&item.SetID,
			&item.Title,
			&item.Description,
			&item.SortOrder,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
