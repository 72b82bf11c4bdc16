package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the kind of bookkeeping obligation a category covers
type CategoryType string

const (
	CategoryBTWQuarter   CategoryType = "btw_quarter"
	CategoryAnnualReport CategoryType = "annual_report"
	CategoryPayroll      CategoryType = "payroll"
	CategoryTaxReturn    CategoryType = "tax_return"
	CategoryOther        CategoryType = "other"
)

// Label returns the Dutch display label for a category type.
// Unknown values fall back to the generic "Document".
func (t CategoryType) Label() string {
	switch t {
	case CategoryBTWQuarter:
		return "BTW aangifte"
	case CategoryAnnualReport:
		return "Jaarrekening"
	case CategoryTaxReturn:
		return "Belastingaangifte"
	case CategoryPayroll:
		return "Loonadministratie"
	default:
		return "Document"
	}
}

// DocumentCategory represents a firm-wide document category shared by all clients
type DocumentCategory struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"category_type"`
	Year         int          `json:"year"`
	Quarter      *int         `json:"quarter,omitempty"`
	SortOrder    int          `json:"sort_order"`
	IsActive     bool         `json:"is_active"`
}

// DocumentChecklist represents a sub-item shown under a category.
// Display data only; the core never mutates it.
type DocumentChecklist struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	ItemName    string    `json:"item_name"`
	Description *string   `json:"description,omitempty"`
	IsRequired  bool      `json:"is_required"`
	SortOrder   int       `json:"sort_order"`
}

// ClientDocumentAssignment links a client to a category it must deliver
// documents for. Unique per (client, category); deadline is date-only.
type ClientDocumentAssignment struct {
	ID         uuid.UUID  `json:"id"`
	ClientID   uuid.UUID  `json:"client_id"`
	CategoryID uuid.UUID  `json:"category_id"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
