package repository

import (
	"context"
	"errors"
	"time"

	"securefinance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssignmentRepository handles database operations for client document assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create creates a new assignment linking a client to a category
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.ClientDocumentAssignment) error {
	query := `
		INSERT INTO client_document_assignments (client_id, category_id, deadline)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		assignment.ClientID,
		assignment.CategoryID,
		assignment.Deadline,
	).Scan(&assignment.ID, &assignment.CreatedAt)

	return err
}

// ListByClientID retrieves all assignments for a client
func (r *AssignmentRepository) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.ClientDocumentAssignment, error) {
	query := `
		SELECT id, client_id, category_id, deadline, created_at
		FROM client_document_assignments
		WHERE client_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.ClientDocumentAssignment
	for rows.Next() {
		assignment := &models.ClientDocumentAssignment{}
		err := rows.Scan(
			&assignment.ID,
			&assignment.ClientID,
			&assignment.CategoryID,
			&assignment.Deadline,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// GetByClientAndCategory retrieves the assignment for a (client, category)
// pair. Returns pgx.ErrNoRows when the category is not assigned.
func (r *AssignmentRepository) GetByClientAndCategory(ctx context.Context, clientID, categoryID uuid.UUID) (*models.ClientDocumentAssignment, error) {
	assignment := &models.ClientDocumentAssignment{}
	query := `
		SELECT id, client_id, category_id, deadline, created_at
		FROM client_document_assignments
		WHERE client_id = $1 AND category_id = $2`

	err := r.db.QueryRow(ctx, query, clientID, categoryID).Scan(
		&assignment.ID,
		&assignment.ClientID,
		&assignment.CategoryID,
		&assignment.Deadline,
		&assignment.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// UpdateDeadline sets or clears the deadline of an assignment
func (r *AssignmentRepository) UpdateDeadline(ctx context.Context, id uuid.UUID, deadline *time.Time) error {
	query := `UPDATE client_document_assignments SET deadline = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, deadline)
	return err
}

// Delete removes an assignment
func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM client_document_assignments WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// IsNotFound reports whether an error is the pgx no-rows sentinel
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
