package repository

import (
	"context"

	"securefinance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientDocumentRepository handles database operations for uploaded client documents
type ClientDocumentRepository struct {
	db *pgxpool.Pool
}

// NewClientDocumentRepository creates a new client document repository
func NewClientDocumentRepository(db *pgxpool.Pool) *ClientDocumentRepository {
	return &ClientDocumentRepository{db: db}
}

// Create creates a new client document record
func (r *ClientDocumentRepository) Create(ctx context.Context, doc *models.ClientDocument) error {
	query := `
		INSERT INTO client_documents (client_id, category_id, file_name, mime_type, size, storage_path, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.ClientID,
		doc.CategoryID,
		doc.FileName,
		doc.MimeType,
		doc.Size,
		doc.StoragePath,
		doc.UploadedBy,
	).Scan(&doc.ID, &doc.UploadedAt)

	return err
}

// GetByID retrieves a client document by ID
func (r *ClientDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ClientDocument, error) {
	doc := &models.ClientDocument{}
	query := `
		SELECT id, client_id, category_id, file_name, mime_type, size, storage_path, uploaded_by, uploaded_at
		FROM client_documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.ClientID,
		&doc.CategoryID,
		&doc.FileName,
		&doc.MimeType,
		&doc.Size,
		&doc.StoragePath,
		&doc.UploadedBy,
		&doc.UploadedAt,
	)

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListByClientID retrieves all documents uploaded for a client, newest first
func (r *ClientDocumentRepository) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.ClientDocument, error) {
	query := `
		SELECT id, client_id, category_id, file_name, mime_type, size, storage_path, uploaded_by, uploaded_at
		FROM client_documents
		WHERE client_id = $1
		ORDER BY uploaded_at DESC`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.ClientDocument
	for rows.Next() {
		doc := &models.ClientDocument{}
		err := rows.Scan(
			&doc.ID,
			&doc.ClientID,
			&doc.CategoryID,
			&doc.FileName,
			&doc.MimeType,
			&doc.Size,
			&doc.StoragePath,
			&doc.UploadedBy,
			&doc.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Delete deletes a client document record
func (r *ClientDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM client_documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
