package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientDocument represents a file a client uploaded for a category
type ClientDocument struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	FileName    string     `json:"file_name"`
	MimeType    string     `json:"mime_type"`
	Size        int64      `json:"size"`
	StoragePath string     `json:"storage_path"`
	UploadedBy  uuid.UUID  `json:"uploaded_by"`
	UploadedAt  time.Time  `json:"uploaded_at"`
}
