package repository

import (
	"context"

	"securefinance-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketRepository handles database operations for tickets
type TicketRepository struct {
	db *pgxpool.Pool
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create creates a new ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (client_id, subject, description, status, priority, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		ticket.ClientID,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedBy,
	).Scan(&ticket.ID, &ticket.CreatedAt)

	return err
}

// ListByClientID retrieves all tickets for a client, newest first
func (r *TicketRepository) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.Ticket, error) {
	query := `
		SELECT id, client_id, subject, description, status, priority, created_by, created_at
		FROM tickets
		WHERE client_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket := &models.Ticket{}
		err := rows.Scan(
			&ticket.ID,
			&ticket.ClientID,
			&ticket.Subject,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.CreatedBy,
			&ticket.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}
