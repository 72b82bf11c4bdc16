package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the lifecycle status of a document request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestSent     RequestStatus = "sent"
	RequestReceived RequestStatus = "received"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// DocumentRequest represents one ad-hoc, trackable document ask for a client.
// Only pending requests are picked up by a dispatch; sent ones never re-send.
type DocumentRequest struct {
	ID          uuid.UUID     `json:"id"`
	ClientID    uuid.UUID     `json:"client_id"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	Status      RequestStatus `json:"status"`
	SentAt      *time.Time    `json:"sent_at,omitempty"`
	CreatedBy   uuid.UUID     `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
}
