package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionType represents how a client is billed
type SubscriptionType string

const (
	SubscriptionAbonnement  SubscriptionType = "abonnement"
	SubscriptionPerOpdracht SubscriptionType = "per_opdracht"
)

// Client represents a client company of the accountancy firm
type Client struct {
	ID                uuid.UUID        `json:"id"`
	UserID            *uuid.UUID       `json:"user_id,omitempty"`
	CompanyName       string           `json:"company_name"`
	ContactPerson     string           `json:"contact_person"`
	Email             *string          `json:"email,omitempty"`
	Phone             *string          `json:"phone,omitempty"`
	Address           *string          `json:"address,omitempty"`
	PostalCode        *string          `json:"postal_code,omitempty"`
	City              *string          `json:"city,omitempty"`
	KvkNumber         *string          `json:"kvk_number,omitempty"`
	BtwNumber         *string          `json:"btw_number,omitempty"`
	SubscriptionType  SubscriptionType `json:"subscription_type"`
	IsActive          bool             `json:"is_active"`
	CompletenessScore int              `json:"completeness_score"` // 0-100, computed outside the core
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// HasContactEmail reports whether the client can receive portal emails
func (c *Client) HasContactEmail() bool {
	return c.Email != nil && *c.Email != ""
}
