package repository

import (
	"context"

	"securefinance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClientRepository handles database operations for clients
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (
			user_id, company_name, contact_person, email, phone, address,
			postal_code, city, kvk_number, btw_number, subscription_type
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, is_active, completeness_score, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		client.UserID,
		client.CompanyName,
		client.ContactPerson,
		client.Email,
		client.Phone,
		client.Address,
		client.PostalCode,
		client.City,
		client.KvkNumber,
		client.BtwNumber,
		client.SubscriptionType,
	).Scan(&client.ID, &client.IsActive, &client.CompletenessScore, &client.CreatedAt, &client.UpdatedAt)

	return err
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `
		SELECT id, user_id, company_name, contact_person, email, phone, address,
			postal_code, city, kvk_number, btw_number, subscription_type,
			is_active, completeness_score, created_at, updated_at
		FROM clients
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.UserID,
		&client.CompanyName,
		&client.ContactPerson,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.PostalCode,
		&client.City,
		&client.KvkNumber,
		&client.BtwNumber,
		&client.SubscriptionType,
		&client.IsActive,
		&client.CompletenessScore,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return client, nil
}

// GetByUserID retrieves the client linked to a portal user
func (r *ClientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `
		SELECT id, user_id, company_name, contact_person, email, phone, address,
			postal_code, city, kvk_number, btw_number, subscription_type,
			is_active, completeness_score, created_at, updated_at
		FROM clients
		WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&client.ID,
		&client.UserID,
		&client.CompanyName,
		&client.ContactPerson,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.PostalCode,
		&client.City,
		&client.KvkNumber,
		&client.BtwNumber,
		&client.SubscriptionType,
		&client.IsActive,
		&client.CompletenessScore,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return client, nil
}

// ListActive retrieves all active clients ordered by company name
func (r *ClientRepository) ListActive(ctx context.Context) ([]*models.Client, error) {
	query := `
		SELECT id, user_id, company_name, contact_person, email, phone, address,
			postal_code, city, kvk_number, btw_number, subscription_type,
			is_active, completeness_score, created_at, updated_at
		FROM clients
		WHERE is_active = true
		ORDER BY company_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		err := rows.Scan(
			&client.ID,
			&client.UserID,
			&client.CompanyName,
			&client.ContactPerson,
			&client.Email,
			&client.Phone,
			&client.Address,
			&client.PostalCode,
			&client.City,
			&client.KvkNumber,
			&client.BtwNumber,
			&client.SubscriptionType,
			&client.IsActive,
			&client.CompletenessScore,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// Update updates a client's editable fields
func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients SET
			company_name = $2,
			contact_person = $3,
			email = $4,
			phone = $5,
			address = $6,
			postal_code = $7,
			city = $8,
			kvk_number = $9,
			btw_number = $10,
			subscription_type = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		client.ID,
		client.CompanyName,
		client.ContactPerson,
		client.Email,
		client.Phone,
		client.Address,
		client.PostalCode,
		client.City,
		client.KvkNumber,
		client.BtwNumber,
		client.SubscriptionType,
	).Scan(&client.UpdatedAt)

	return err
}

// SetUserID links a portal user to a client record
func (r *ClientRepository) SetUserID(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE clients SET user_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, userID)
	return err
}

// Deactivate soft-deletes a client. Rows are never hard-deleted.
func (r *ClientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE clients SET is_active = false, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
