package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentSet is a reusable named template of document asks.
// Sets are templates, not singletons: applying one twice creates duplicates.
type DocumentSet struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentSetItem is one ordered entry within a document set
type DocumentSetItem struct {
	ID          uuid.UUID `json:"id"`
	SetID       uuid.UUID `json:"set_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
}
