package retrieval

import (
	"context"
	"log/slog"

	"github.com/siherrmann/retriever/core/query"
	"github.com/siherrmann/retriever/model"
	"golang.org/x/sync/errgroup"
)

// Engine coordinates the full retrieval pipeline for a request:
// reformulate, concurrent strategy fan-out, merge/dedup, optional relevance
// filtering, best-effort reranking and truncation to top-K.
type Engine struct {
	strategies   map[model.SearchType]Strategy
	reformulator *query.Reformulator
	merger       *Merger
	filter       *RelevanceFilter
	reranker     *Reranker
	config       model.RetrievalConfig
	logger       *slog.Logger
}

// NewEngine creates a new retrieval engine. The strategy set is fixed at
// construction; reranker may be a no-op reranker but must not be nil.
func NewEngine(semantic, keyword, domain Strategy, reranker *Reranker, config model.RetrievalConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	engine := &Engine{
		strategies: map[model.SearchType]Strategy{
			model.SearchTypeSemantic: semantic,
			model.SearchTypeKeyword:  keyword,
			model.SearchTypeDomain:   domain,
		},
		reformulator: query.NewReformulator(config.MaxQueryVariants),
		merger:       NewMerger(),
		reranker:     reranker,
		config:       config,
		logger:       logger,
	}

	if config.EnableRelevanceFilter {
		engine.filter = NewRelevanceFilter(config)
	}

	return engine
}

// Retrieve runs the retrieval pipeline for a request. Only request validation
// errors are returned as hard failures; strategy and reranker failures
// degrade to partial or empty results described by the response statistics.
func (e *Engine) Retrieve(ctx context.Context, req *model.RetrievalRequest) (*model.RetrievalResponse, error) {
	if req == nil {
		return nil, model.ErrEmptyQuery
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	variants := e.reformulator.Reformulate(req.Query)
	strategies := e.activeStrategies(req.Mode)

	// Fan out every (variant, strategy) pair concurrently with an
	// independent timeout per call; results land in per-task slots so no
	// locking is needed.
	type task struct {
		strategy Strategy
		variant  string
	}
	var tasks []task
	for _, strategy := range strategies {
		for _, variant := range variants {
			tasks = append(tasks, task{strategy: strategy, variant: variant})
		}
	}

	type searchOutcome struct {
		results []*model.SearchResult
		err     error
	}

	slots := make([][]*model.SearchResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, e.config.StrategyTimeout)
			defer cancel()

			// Search runs on its own goroutine so a call that never
			// observes the deadline can be abandoned; the buffered
			// channel lets an abandoned call finish without leaking.
			done := make(chan searchOutcome, 1)
			go func() {
				results, err := t.strategy.Search(sctx, t.variant, e.config.CandidateLimit, req)
				done <- searchOutcome{results: results, err: err}
			}()

			select {
			case <-sctx.Done():
				e.logger.Warn("Strategy timed out",
					slog.String("strategy", string(t.strategy.Name())),
					slog.String("error", sctx.Err().Error()))
			case outcome := <-done:
				if outcome.err != nil {
					// A failing strategy contributes nothing but never
					// aborts its siblings.
					e.logger.Warn("Strategy failed",
						slog.String("strategy", string(t.strategy.Name())),
						slog.String("error", outcome.err.Error()))
					return nil
				}
				slots[i] = outcome.results
			}
			return nil
		})
	}
	// Goroutines always return nil; the group is used for the join barrier
	// and request-scoped cancellation.
	_ = g.Wait()

	// Pool results across variants per strategy before deduplication
	byStrategy := make(map[model.SearchType][]*model.SearchResult, len(strategies))
	for i, t := range tasks {
		name := t.strategy.Name()
		byStrategy[name] = append(byStrategy[name], slots[i]...)
	}

	merged, mergeStats := e.merger.Merge(byStrategy)

	filtered := merged
	if e.filter != nil {
		filtered = e.filter.Apply(merged)
	}

	// Rerank against the original, non-reformulated query
	reranked, didRerank := e.reranker.Rerank(ctx, req.Query, filtered)

	// Truncate to top-K by final score
	if len(reranked) > req.TopK {
		reranked = reranked[:req.TopK]
	}

	stats := model.RetrievalStats{
		StrategyResults: mergeStats.StrategyCounts,
		TotalCandidates: mergeStats.TotalCount,
		MergedCount:     mergeStats.MergedCount,
		FilteredCount:   len(filtered),
		DedupRatio:      mergeStats.DedupRatio,
		Reranked:        didRerank,
		QueryVariants:   len(variants),
		Reason:          model.ReasonOK,
	}
	if didRerank {
		stats.RerankedCount = len(filtered)
	}
	if len(reranked) == 0 {
		// An empty result set is a normal, expected outcome; the reason
		// code lets the caller present it instead of guessing.
		stats.Reason = model.ReasonNoRelevantContent
	}
	stats.AvgScore = averageFinalScore(reranked)

	e.logger.Info("Retrieval finished",
		slog.String("tenant_id", req.TenantID),
		slog.String("mode", string(req.Mode)),
		slog.Int("candidates", stats.TotalCandidates),
		slog.Int("returned", len(reranked)),
		slog.Bool("reranked", didRerank))

	return &model.RetrievalResponse{Results: reranked, Stats: stats}, nil
}

// activeStrategies resolves the strategy set for a search mode. Hybrid mode
// runs all strategies in fixed order; every other mode runs the single named
// strategy.
func (e *Engine) activeStrategies(mode model.SearchMode) []Strategy {
	switch mode {
	case model.SearchModeSemantic:
		return []Strategy{e.strategies[model.SearchTypeSemantic]}
	case model.SearchModeKeyword:
		return []Strategy{e.strategies[model.SearchTypeKeyword]}
	case model.SearchModeDomain:
		return []Strategy{e.strategies[model.SearchTypeDomain]}
	default:
		return []Strategy{
			e.strategies[model.SearchTypeSemantic],
			e.strategies[model.SearchTypeKeyword],
			e.strategies[model.SearchTypeDomain],
		}
	}
}

// averageFinalScore computes the mean final score of the returned results
func averageFinalScore(results []*model.SearchResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, result := range results {
		sum += result.FinalScore()
	}
	return sum / float64(len(results))
}
