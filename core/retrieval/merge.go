package retrieval

import (
	"sort"

	"github.com/siherrmann/retriever/model"
)

// strategyOrder fixes the concatenation order across strategies so that
// merging is deterministic regardless of which strategy returned first
var strategyOrder = []model.SearchType{
	model.SearchTypeSemantic,
	model.SearchTypeKeyword,
	model.SearchTypeDomain,
}

// MergeStats describes a merge pass
type MergeStats struct {
	StrategyCounts map[model.SearchType]int
	TotalCount     int
	MergedCount    int
	DedupRatio     float64
}

// Merger deduplicates results across strategies by content fingerprint and
// normalizes each strategy's raw scores to a comparable [0,1] range
type Merger struct{}

// NewMerger creates a new merger
func NewMerger() *Merger {
	return &Merger{}
}

// Merge produces a single deduplicated, score-normalized list sorted by score
// descending. Ties are broken by content hash so that identical inputs always
// produce identical ordering.
func (m *Merger) Merge(resultsByStrategy map[model.SearchType][]*model.SearchResult) ([]*model.SearchResult, MergeStats) {
	stats := MergeStats{
		StrategyCounts: make(map[model.SearchType]int, len(resultsByStrategy)),
	}

	// Concatenate in fixed strategy order
	var all []*model.SearchResult
	for _, searchType := range strategyOrder {
		results := resultsByStrategy[searchType]
		stats.StrategyCounts[searchType] = len(results)
		stats.TotalCount += len(results)
		all = append(all, results...)
	}

	// Deduplicate by content fingerprint, keeping the first-seen instance
	seen := make(map[string]bool, len(all))
	merged := make([]*model.SearchResult, 0, len(all))
	for _, result := range all {
		if result.ContentHash == "" {
			result.ContentHash = model.HashContent(result.Text)
		}
		if seen[result.ContentHash] {
			continue
		}
		seen[result.ContentHash] = true
		merged = append(merged, result)
	}

	// Min-max normalize per strategy group. Singleton groups and groups with
	// equal scores are left untouched to avoid dividing by zero.
	groups := make(map[model.SearchType][]*model.SearchResult)
	for _, result := range merged {
		groups[result.SearchType] = append(groups[result.SearchType], result)
	}
	for _, group := range groups {
		normalizeScores(group)
	}

	sortByOriginalScore(merged)

	stats.MergedCount = len(merged)
	stats.DedupRatio = 1.0
	if stats.TotalCount > 0 {
		stats.DedupRatio = float64(stats.MergedCount) / float64(stats.TotalCount)
	}

	return merged, stats
}

// normalizeScores min-max normalizes original scores to [0,1] within a group
func normalizeScores(group []*model.SearchResult) {
	if len(group) < 2 {
		return
	}

	minScore := group[0].OriginalScore
	maxScore := group[0].OriginalScore
	for _, result := range group[1:] {
		if result.OriginalScore < minScore {
			minScore = result.OriginalScore
		}
		if result.OriginalScore > maxScore {
			maxScore = result.OriginalScore
		}
	}

	if maxScore == minScore {
		return
	}

	for _, result := range group {
		result.OriginalScore = (result.OriginalScore - minScore) / (maxScore - minScore)
	}
}

// sortByOriginalScore sorts descending by score with content hash as the
// fixed secondary key
func sortByOriginalScore(results []*model.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].OriginalScore != results[j].OriginalScore {
			return results[i].OriginalScore > results[j].OriginalScore
		}
		return results[i].ContentHash < results[j].ContentHash
	})
}
