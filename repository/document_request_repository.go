package repository

import (
	"context"
	"time"

	"securefinance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRequestRepository handles database operations for document requests
type DocumentRequestRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRequestRepository creates a new document request repository
func NewDocumentRequestRepository(db *pgxpool.Pool) *DocumentRequestRepository {
	return &DocumentRequestRepository{db: db}
}

// Create creates a new document request
func (r *DocumentRequestRepository) Create(ctx context.Context, request *models.DocumentRequest) error {
	query := `
		INSERT INTO document_requests (client_id, title, description, deadline, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		request.ClientID,
		request.Title,
		request.Description,
		request.Deadline,
		request.Status,
		request.CreatedBy,
	).Scan(&request.ID, &request.CreatedAt)

	return err
}

// ListByClientID retrieves all document requests for a client
func (r *DocumentRequestRepository) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.DocumentRequest, error) {
	query := `
		SELECT id, client_id, title, description, deadline, status, sent_at, created_by, created_at
		FROM document_requests
		WHERE client_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.DocumentRequest
	for rows.Next() {
		request := &models.DocumentRequest{}
		err := rows.Scan(
			&request.ID,
			&request.ClientID,
			&request.Title,
			&request.Description,
			&request.Deadline,
			&request.Status,
			&request.SentAt,
			&request.CreatedBy,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// MarkSent transitions a request to sent with the given dispatch time
func (r *DocumentRequestRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `
		UPDATE document_requests SET
			status = $2,
			sent_at = $3
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.RequestSent, sentAt)
	return err
}

// Delete deletes a document request
func (r *DocumentRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM document_requests WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
