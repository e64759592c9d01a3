package model

import "time"

// RetrievalConfig represents configuration for the retrieval engine
type RetrievalConfig struct {
	// Per-strategy candidate budget. Each strategy invocation fetches up to
	// this many chunks before merging and truncation to the request's TopK.
	CandidateLimit int `json:"candidate_limit"`

	// Query reformulation
	MaxQueryVariants int `json:"max_query_variants"`

	// Timeouts. Each strategy call carries its own timeout; a strategy that
	// times out is treated like one that failed and returns nothing.
	StrategyTimeout time.Duration `json:"strategy_timeout"`
	RerankTimeout   time.Duration `json:"rerank_timeout"`

	// Reranking
	RerankTokenBudget int `json:"rerank_token_budget"`

	// Relevance filter (optional refinement layer)
	EnableRelevanceFilter bool          `json:"enable_relevance_filter"`
	MinRelevance          float64       `json:"min_relevance"`
	FreshnessWeight       float64       `json:"freshness_weight"`
	DiversityWeight       float64       `json:"diversity_weight"`
	FreshnessHalfLife     time.Duration `json:"freshness_half_life"`
}

// DefaultRetrievalConfig returns a sensible default configuration
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		CandidateLimit:        20,
		MaxQueryVariants:      3,
		StrategyTimeout:       5 * time.Second,
		RerankTimeout:         10 * time.Second,
		RerankTokenBudget:     512,
		EnableRelevanceFilter: false,
		MinRelevance:          0.1,
		FreshnessWeight:       0.1,
		DiversityWeight:       0.1,
		FreshnessHalfLife:     30 * 24 * time.Hour,
	}
}
