package model

import (
	"time"

	"github.com/google/uuid"
)

// SearchType identifies which retrieval strategy produced a result
type SearchType string

const (
	SearchTypeSemantic SearchType = "semantic"
	SearchTypeKeyword  SearchType = "keyword"
	SearchTypeDomain   SearchType = "domain"
)

// Chunk represents a contiguous span of text from an ingested content item.
// Chunks are immutable once created; they are written by the ingestion
// pipeline and only read by the retrieval engine.
type Chunk struct {
	ID         int       `json:"id"`
	RID        uuid.UUID `json:"rid"`
	ContentID  int64     `json:"content_id"`
	ContentRID uuid.UUID `json:"content_rid"`
	TenantID   string    `json:"tenant_id"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"embedding,omitempty"`
	StartPos   *int      `json:"start_pos,omitempty"`
	EndPos     *int      `json:"end_pos,omitempty"`
	ChunkIndex *int      `json:"chunk_index,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	// Content item attributes joined in by search queries
	Title       string `json:"title,omitempty"`
	Domain      string `json:"domain,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	// Search results
	Similarity float64 `json:"similarity,omitempty"`
	Rank       float64 `json:"rank,omitempty"`
}
