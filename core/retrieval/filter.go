package retrieval

import (
	"math"
	"time"

	"github.com/siherrmann/retriever/model"
)

// RelevanceFilter is the optional refinement layer between merging and
// reranking. It recomputes a composite score per candidate from the
// normalized retrieval score, content freshness and source diversity, and
// drops candidates below a contextual relevance threshold.
type RelevanceFilter struct {
	minScore        float64
	freshnessWeight float64
	diversityWeight float64
	halfLife        time.Duration
	now             func() time.Time
}

// NewRelevanceFilter creates a relevance filter from the engine configuration
func NewRelevanceFilter(config model.RetrievalConfig) *RelevanceFilter {
	return &RelevanceFilter{
		minScore:        config.MinRelevance,
		freshnessWeight: config.FreshnessWeight,
		diversityWeight: config.DiversityWeight,
		halfLife:        config.FreshnessHalfLife,
		now:             time.Now,
	}
}

// Apply recomputes composite scores and drops candidates below the threshold.
// The input is expected to be score-normalized and sorted; the output keeps
// the same ordering contract (score descending, content hash as tie-breaker).
func (f *RelevanceFilter) Apply(results []*model.SearchResult) []*model.SearchResult {
	if len(results) == 0 {
		return results
	}

	baseWeight := 1.0 - f.freshnessWeight - f.diversityWeight
	domainSeen := make(map[string]int)

	filtered := make([]*model.SearchResult, 0, len(results))
	for _, result := range results {
		domain, _ := result.Metadata["domain"].(string)

		composite := baseWeight*result.OriginalScore +
			f.freshnessWeight*f.freshness(result.CreatedAt) +
			f.diversityWeight*diversity(domainSeen[domain])
		domainSeen[domain]++

		if composite < f.minScore {
			continue
		}

		result.OriginalScore = composite
		filtered = append(filtered, result)
	}

	sortByOriginalScore(filtered)

	return filtered
}

// freshness decays exponentially with content age, halving every halfLife.
// Unknown creation times score a neutral 0.5.
func (f *RelevanceFilter) freshness(createdAt time.Time) float64 {
	if createdAt.IsZero() || f.halfLife <= 0 {
		return 0.5
	}
	age := f.now().Sub(createdAt)
	if age < 0 {
		age = 0
	}
	return math.Pow(0.5, float64(age)/float64(f.halfLife))
}

// diversity rewards the first candidates of each source domain
func diversity(timesSeen int) float64 {
	return 1.0 / float64(1+timesSeen)
}
