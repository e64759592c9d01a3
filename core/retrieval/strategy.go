// Package retrieval implements the hybrid retrieval and reranking engine:
// concurrent search strategies over a tenant-scoped corpus, score
// normalization and deduplication, an optional relevance filter and a
// best-effort cross-encoder reranking pass.
package retrieval

import (
	"context"
	"math"

	"github.com/siherrmann/retriever/core/pipeline"
	"github.com/siherrmann/retriever/core/query"
	"github.com/siherrmann/retriever/model"
)

// VectorIndex defines the vector store operations used by strategies.
// The tenant id is a mandatory predicate of every call.
type VectorIndex interface {
	SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, tenantID string, domain string, contentType string) ([]*model.Chunk, error)
	SelectChunksBySimilarityInDomain(ctx context.Context, embedding []float32, limit int, tenantID string, domainHint string) ([]*model.Chunk, error)
}

// FulltextIndex defines the full-text search operations used by strategies.
// The tenant id is a mandatory predicate of every call.
type FulltextIndex interface {
	SearchChunksByTerms(ctx context.Context, terms []string, limit int, tenantID string, domain string, contentType string) ([]*model.Chunk, error)
}

// Strategy defines a retrieval strategy. A strategy fails by returning an
// error which the engine degrades to an empty result set; it must never
// panic or block past its context deadline.
type Strategy interface {
	Name() model.SearchType
	Search(ctx context.Context, queryText string, limit int, req *model.RetrievalRequest) ([]*model.SearchResult, error)
}

// SemanticStrategy embeds the query and performs nearest-neighbor similarity
// search over chunk vectors
type SemanticStrategy struct {
	index VectorIndex
	embed pipeline.EmbedFunc
}

// NewSemanticStrategy creates a new semantic strategy
func NewSemanticStrategy(index VectorIndex, embed pipeline.EmbedFunc) *SemanticStrategy {
	return &SemanticStrategy{index: index, embed: embed}
}

// Name returns the search type of the strategy
func (s *SemanticStrategy) Name() model.SearchType {
	return model.SearchTypeSemantic
}

// Search performs semantic retrieval. Score = cosine similarity.
func (s *SemanticStrategy) Search(ctx context.Context, queryText string, limit int, req *model.RetrievalRequest) ([]*model.SearchResult, error) {
	embedding, err := s.embed(queryText)
	if err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Err: ErrEmbeddingUnavailable}
	}

	chunks, err := s.index.SelectChunksBySimilarity(ctx, embedding, limit, req.TenantID, req.Domain, req.ContentType)
	if err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Err: err}
	}

	results := make([]*model.SearchResult, len(chunks))
	for i, chunk := range chunks {
		results[i] = model.NewSearchResult(chunk, model.SearchTypeSemantic, chunk.Similarity)
	}

	return results, nil
}

// KeywordStrategy extracts normalized terms from the query and performs
// a ranked full-text search with OR semantics
type KeywordStrategy struct {
	index FulltextIndex
}

// NewKeywordStrategy creates a new keyword strategy
func NewKeywordStrategy(index FulltextIndex) *KeywordStrategy {
	return &KeywordStrategy{index: index}
}

// Name returns the search type of the strategy
func (s *KeywordStrategy) Name() model.SearchType {
	return model.SearchTypeKeyword
}

// Search performs keyword retrieval. Score = text relevance rank.
func (s *KeywordStrategy) Search(ctx context.Context, queryText string, limit int, req *model.RetrievalRequest) ([]*model.SearchResult, error) {
	terms := query.ExtractKeywords(queryText)
	if len(terms) == 0 {
		return nil, nil
	}

	chunks, err := s.index.SearchChunksByTerms(ctx, terms, limit, req.TenantID, req.Domain, req.ContentType)
	if err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Err: err}
	}

	results := make([]*model.SearchResult, len(chunks))
	for i, chunk := range chunks {
		results[i] = model.NewSearchResult(chunk, model.SearchTypeKeyword, chunk.Rank)
	}

	return results, nil
}

// DomainFilteredStrategy extracts domain hints from the query text and
// performs semantic search scoped to chunks whose source domain matches a
// hint. It only fires when the query itself names a source.
type DomainFilteredStrategy struct {
	index VectorIndex
	embed pipeline.EmbedFunc
}

// NewDomainFilteredStrategy creates a new domain-filtered strategy
func NewDomainFilteredStrategy(index VectorIndex, embed pipeline.EmbedFunc) *DomainFilteredStrategy {
	return &DomainFilteredStrategy{index: index, embed: embed}
}

// Name returns the search type of the strategy
func (s *DomainFilteredStrategy) Name() model.SearchType {
	return model.SearchTypeDomain
}

// Search performs domain-filtered retrieval. The result budget is split
// across hints proportionally to hint specificity, and similarity scores are
// scaled by the specificity weight before merging.
func (s *DomainFilteredStrategy) Search(ctx context.Context, queryText string, limit int, req *model.RetrievalRequest) ([]*model.SearchResult, error) {
	hints := query.ExtractDomainHints(queryText)
	if len(hints) == 0 {
		return nil, nil
	}

	embedding, err := s.embed(queryText)
	if err != nil {
		return nil, &StrategyError{Strategy: s.Name(), Err: ErrEmbeddingUnavailable}
	}

	totalWeight := 0.0
	for _, hint := range hints {
		totalWeight += hint.Weight
	}

	var results []*model.SearchResult
	for _, hint := range hints {
		hintLimit := int(math.Round(float64(limit) * hint.Weight / totalWeight))
		if hintLimit < 1 {
			hintLimit = 1
		}

		chunks, err := s.index.SelectChunksBySimilarityInDomain(ctx, embedding, hintLimit, req.TenantID, hint.Value)
		if err != nil {
			return nil, &StrategyError{Strategy: s.Name(), Err: err}
		}

		for _, chunk := range chunks {
			results = append(results, model.NewSearchResult(chunk, model.SearchTypeDomain, chunk.Similarity*hint.Weight))
		}
	}

	return results, nil
}
