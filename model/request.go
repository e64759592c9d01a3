package model

import "errors"

// SearchMode selects which strategies run for a retrieval request
type SearchMode string

const (
	SearchModeHybrid   SearchMode = "hybrid"
	SearchModeSemantic SearchMode = "semantic"
	SearchModeKeyword  SearchMode = "keyword"
	SearchModeDomain   SearchMode = "domain"
)

// MaxTopK is the largest result count a caller may request
const MaxTopK = 100

// Request validation errors. These are the only errors surfaced to the
// caller as hard failures; everything else degrades to partial results.
var (
	ErrEmptyQuery      = errors.New("query must not be empty")
	ErrMissingTenantID = errors.New("tenant id must not be empty")
	ErrInvalidTopK     = errors.New("top k must be between 1 and 100")
	ErrInvalidMode     = errors.New("unknown search mode")
)

// RetrievalRequest describes a single retrieval call
type RetrievalRequest struct {
	Query       string     `json:"query"`
	TenantID    string     `json:"tenant_id"`
	Mode        SearchMode `json:"mode"`
	TopK        int        `json:"top_k"`
	Domain      string     `json:"domain,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
}

// Validate checks the request before any strategy executes
func (r *RetrievalRequest) Validate() error {
	if r.Query == "" {
		return ErrEmptyQuery
	}
	if r.TenantID == "" {
		return ErrMissingTenantID
	}
	if r.TopK < 1 || r.TopK > MaxTopK {
		return ErrInvalidTopK
	}
	switch r.Mode {
	case SearchModeHybrid, SearchModeSemantic, SearchModeKeyword, SearchModeDomain:
		return nil
	default:
		return ErrInvalidMode
	}
}
