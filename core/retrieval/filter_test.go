package retrieval

import (
	"testing"
	"time"

	"github.com/siherrmann/retriever/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(minScore, freshnessWeight, diversityWeight float64, now time.Time) *RelevanceFilter {
	filter := NewRelevanceFilter(model.RetrievalConfig{
		MinRelevance:      minScore,
		FreshnessWeight:   freshnessWeight,
		DiversityWeight:   diversityWeight,
		FreshnessHalfLife: 30 * 24 * time.Hour,
	})
	filter.now = func() time.Time { return now }
	return filter
}

func TestRelevanceFilterApply(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Drops candidates below the threshold", func(t *testing.T) {
		filter := newTestFilter(0.3, 0, 0, now)

		filtered := filter.Apply([]*model.SearchResult{
			testResult("strong match", model.SearchTypeSemantic, 0.8),
			testResult("weak match", model.SearchTypeSemantic, 0.1),
		})

		require.Len(t, filtered, 1)
		assert.Equal(t, "strong match", filtered[0].Text)
	})

	t.Run("Fresh content beats stale content at equal score", func(t *testing.T) {
		filter := newTestFilter(0, 0.3, 0, now)

		fresh := testResult("fresh passage", model.SearchTypeSemantic, 0.5)
		fresh.CreatedAt = now.Add(-24 * time.Hour)
		stale := testResult("stale passage", model.SearchTypeSemantic, 0.5)
		stale.CreatedAt = now.Add(-365 * 24 * time.Hour)

		filtered := filter.Apply([]*model.SearchResult{stale, fresh})

		require.Len(t, filtered, 2)
		assert.Equal(t, "fresh passage", filtered[0].Text)
		assert.Greater(t, filtered[0].OriginalScore, filtered[1].OriginalScore)
	})

	t.Run("Unknown creation time scores neutral freshness", func(t *testing.T) {
		filter := newTestFilter(0, 1.0, 0, now)

		filtered := filter.Apply([]*model.SearchResult{
			testResult("no timestamp", model.SearchTypeSemantic, 0.9),
		})

		require.Len(t, filtered, 1)
		assert.InDelta(t, 0.5, filtered[0].OriginalScore, 1e-9)
	})

	t.Run("Repeated domains lose diversity credit", func(t *testing.T) {
		filter := newTestFilter(0, 0, 0.4, now)

		first := testResult("first from docs", model.SearchTypeSemantic, 0.5)
		first.Metadata = model.Metadata{"domain": "docs.example.com"}
		second := testResult("second from docs", model.SearchTypeSemantic, 0.5)
		second.Metadata = model.Metadata{"domain": "docs.example.com"}
		other := testResult("first from blog", model.SearchTypeSemantic, 0.5)
		other.Metadata = model.Metadata{"domain": "blog.example.com"}

		filtered := filter.Apply([]*model.SearchResult{first, second, other})

		require.Len(t, filtered, 3)
		// First-seen candidates of each domain get full diversity credit
		assert.Equal(t, filtered[0].OriginalScore, filtered[1].OriginalScore)
		assert.Greater(t, filtered[0].OriginalScore, filtered[2].OriginalScore)
	})

	t.Run("Empty input passes through", func(t *testing.T) {
		filter := newTestFilter(0.3, 0.1, 0.1, now)
		assert.Empty(t, filter.Apply(nil))
	})
}
