package retrieval

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/siherrmann/retriever/core/pipeline"
	"github.com/siherrmann/retriever/model"
)

// Reranker scores each (query, passage) pair jointly with a cross-encoder and
// re-sorts candidates by that score. Reranking is a best-effort enhancement:
// if the model is unavailable, errors or times out, the input list is
// returned unmodified.
type Reranker struct {
	score       pipeline.CrossEncodeFunc
	tokenBudget int
	timeout     time.Duration
	logger      *slog.Logger
}

// NewReranker creates a new reranker. A nil score function disables reranking.
func NewReranker(score pipeline.CrossEncodeFunc, tokenBudget int, timeout time.Duration, logger *slog.Logger) *Reranker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reranker{
		score:       score,
		tokenBudget: tokenBudget,
		timeout:     timeout,
		logger:      logger,
	}
}

// Rerank populates rerank scores and re-sorts descending by them. The second
// return value reports whether reranking was applied; on failure the input
// list is returned unchanged with rerank scores left unset.
func (r *Reranker) Rerank(ctx context.Context, queryText string, results []*model.SearchResult) ([]*model.SearchResult, bool) {
	if r.score == nil || len(results) == 0 {
		return results, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// Passage text is truncated to a fixed token budget to bound latency
	passages := make([]string, len(results))
	for i, result := range results {
		passages[i] = truncateTokens(result.Text, r.tokenBudget)
	}

	type scoreResult struct {
		scores []float64
		err    error
	}
	done := make(chan scoreResult, 1)
	go func() {
		scores, err := r.score(queryText, passages)
		done <- scoreResult{scores: scores, err: err}
	}()

	var scores []float64
	select {
	case <-ctx.Done():
		r.logger.Warn("Reranking timed out, keeping merged order", slog.String("error", ctx.Err().Error()))
		return results, false
	case scored := <-done:
		if scored.err != nil {
			r.logger.Warn("Reranking failed, keeping merged order", slog.String("error", scored.err.Error()))
			return results, false
		}
		if len(scored.scores) != len(results) {
			r.logger.Warn("Reranking returned wrong score count, keeping merged order",
				slog.Int("expected", len(results)), slog.Int("got", len(scored.scores)))
			return results, false
		}
		scores = scored.scores
	}

	reranked := make([]*model.SearchResult, len(results))
	copy(reranked, results)
	for i := range reranked {
		score := scores[i]
		reranked[i].RerankScore = &score
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		if *reranked[i].RerankScore != *reranked[j].RerankScore {
			return *reranked[i].RerankScore > *reranked[j].RerankScore
		}
		return reranked[i].ContentHash < reranked[j].ContentHash
	})

	return reranked, true
}

// truncateTokens keeps the first budget whitespace-separated tokens of text
func truncateTokens(text string, budget int) string {
	if budget <= 0 {
		return text
	}
	tokens := strings.Fields(text)
	if len(tokens) <= budget {
		return text
	}
	return strings.Join(tokens[:budget], " ")
}
