package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// hashPrefixLength is the fixed-length prefix of the passage text that feeds
// the content fingerprint. Two results with the same fingerprint are treated
// as the same candidate regardless of which strategy found them.
const hashPrefixLength = 200

// HashContent computes the deterministic content fingerprint of a passage
func HashContent(text string) string {
	if len(text) > hashPrefixLength {
		text = text[:hashPrefixLength]
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// SearchResult represents a retrieval candidate
type SearchResult struct {
	Text          string     `json:"text"`
	Metadata      Metadata   `json:"metadata,omitempty"`
	OriginalScore float64    `json:"original_score"`
	RerankScore   *float64   `json:"rerank_score,omitempty"`
	SearchType    SearchType `json:"search_type"`
	ContentHash   string     `json:"content_hash"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
}

// NewSearchResult builds a result from a chunk returned by a strategy.
// The raw score is strategy-specific and not yet comparable across strategies.
func NewSearchResult(chunk *Chunk, searchType SearchType, score float64) *SearchResult {
	return &SearchResult{
		Text: chunk.Text,
		Metadata: Metadata{
			"tenant_id":    chunk.TenantID,
			"content_id":   chunk.ContentRID.String(),
			"chunk_id":     chunk.RID.String(),
			"title":        chunk.Title,
			"domain":       chunk.Domain,
			"content_type": chunk.ContentType,
			"source_url":   chunk.SourceURL,
		},
		OriginalScore: score,
		SearchType:    searchType,
		ContentHash:   HashContent(chunk.Text),
		CreatedAt:     chunk.CreatedAt,
	}
}

// FinalScore returns the rerank score if present, else the original score
func (r *SearchResult) FinalScore() float64 {
	if r.RerankScore != nil {
		return *r.RerankScore
	}
	return r.OriginalScore
}

// ResponseReason explains an empty or degraded response to the caller
type ResponseReason string

const (
	// ReasonOK means the response carries relevant content.
	ReasonOK ResponseReason = "ok"
	// ReasonNoRelevantContent means no strategy found anything; this is a
	// normal, expected outcome, not a system error.
	ReasonNoRelevantContent ResponseReason = "no_relevant_content"
)

// RetrievalStats describes how a response was produced. It is part of the
// response contract so that downstream consumers can decide whether to fall
// back to a non-retrieval answer path.
type RetrievalStats struct {
	StrategyResults map[SearchType]int `json:"strategy_results"`
	TotalCandidates int                `json:"total_candidates"`
	MergedCount     int                `json:"merged_count"`
	FilteredCount   int                `json:"filtered_count"`
	RerankedCount   int                `json:"reranked_count"`
	DedupRatio      float64            `json:"dedup_ratio"`
	AvgScore        float64            `json:"avg_score"`
	Reranked        bool               `json:"reranked"`
	QueryVariants   int                `json:"query_variants"`
	Reason          ResponseReason     `json:"reason"`
}

// RetrievalResponse is the ordered result set for a retrieval request
type RetrievalResponse struct {
	Results []*SearchResult `json:"results"`
	Stats   RetrievalStats  `json:"stats"`
}
