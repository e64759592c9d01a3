package model

import (
	"time"

	"github.com/google/uuid"
)

// Content represents an ingested content item a chunk belongs to
type Content struct {
	ID          int64     `json:"id"`
	RID         uuid.UUID `json:"rid"`
	TenantID    string    `json:"tenant_id"`
	Title       string    `json:"title"`
	Domain      string    `json:"domain,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
