package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the status of a ticket
type TicketStatus string

const (
	TicketOpen              TicketStatus = "open"
	TicketWaitingClient     TicketStatus = "waiting_client"
	TicketWaitingAccountant TicketStatus = "waiting_accountant"
	TicketClosed            TicketStatus = "closed"
)

// TicketPriority represents the priority of a ticket
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// Ticket represents a per-client message. The portal uses it as a plain
// notification record, not a full ticketing workflow.
type Ticket struct {
	ID          uuid.UUID      `json:"id"`
	ClientID    uuid.UUID      `json:"client_id"`
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	CreatedBy   uuid.UUID      `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}
