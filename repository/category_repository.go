package repository

import (
	"context"

	"securefinance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository handles database operations for document categories
// and their checklist items
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new document category
func (r *CategoryRepository) Create(ctx context.Context, category *models.DocumentCategory) error {
	query := `
		INSERT INTO document_categories (name, category_type, year, quarter, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(
		ctx, query,
		category.Name,
		category.CategoryType,
		category.Year,
		category.Quarter,
		category.SortOrder,
		category.IsActive,
	).Scan(&category.ID)

	return err
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DocumentCategory, error) {
	category := &models.DocumentCategory{}
	query := `
		SELECT id, name, category_type, year, quarter, sort_order, is_active
		FROM document_categories
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.CategoryType,
		&category.Year,
		&category.Quarter,
		&category.SortOrder,
		&category.IsActive,
	)

	if err != nil {
		return nil, err
	}

	return category, nil
}

// List retrieves categories, optionally restricted to active ones.
// Ordered by year descending, then sort order, matching the dashboard view.
func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]*models.DocumentCategory, error) {
	query := `
		SELECT id, name, category_type, year, quarter, sort_order, is_active
		FROM document_categories`

	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY year DESC, sort_order`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.DocumentCategory
	for rows.Next() {
		category := &models.DocumentCategory{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.CategoryType,
			&category.Year,
			&category.Quarter,
			&category.SortOrder,
			&category.IsActive,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// ListChecklist retrieves all checklist items ordered by sort order
func (r *CategoryRepository) ListChecklist(ctx context.Context) ([]*models.DocumentChecklist, error) {
	query := `
		SELECT id, category_id, item_name, description, is_required, sort_order
		FROM document_checklists
		ORDER BY sort_order`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.DocumentChecklist
	for rows.Next() {
		item := &models.DocumentChecklist{}
		err := rows.Scan(
			&item.ID,
			&item.CategoryID,
			&item.ItemName,
			&item.Description,
			&item.IsRequired,
			&item.SortOrder,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
