package retrieval

import (
	"context"
	"testing"

	"github.com/siherrmann/retriever/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticStrategy(t *testing.T) {
	req := &model.RetrievalRequest{Query: "vector search", TenantID: "tenant-a", Mode: model.SearchModeSemantic, TopK: 5}

	t.Run("Returns results with similarity as score", func(t *testing.T) {
		index := &fakeVectorIndex{chunks: []*model.Chunk{
			testChunk("tenant-a", "pgvector hnsw indexes", "docs.example.com", 0.9),
			testChunk("tenant-a", "tsvector full text search", "docs.example.com", 0.7),
		}}
		strategy := NewSemanticStrategy(index, okEmbed)

		results, err := strategy.Search(context.Background(), "vector search", 10, req)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, model.SearchTypeSemantic, results[0].SearchType)
		assert.Equal(t, 0.9, results[0].OriginalScore)
	})

	t.Run("Tenant id reaches the index on every call", func(t *testing.T) {
		index := &fakeVectorIndex{}
		strategy := NewSemanticStrategy(index, okEmbed)

		_, err := strategy.Search(context.Background(), "vector search", 10, req)
		require.NoError(t, err)
		require.Len(t, index.similarityCalls, 1)
		assert.Equal(t, "tenant-a", index.similarityCalls[0].tenantID)
	})

	t.Run("Never returns another tenants chunks", func(t *testing.T) {
		index := &fakeVectorIndex{chunks: []*model.Chunk{
			testChunk("tenant-b", "secret chunk of tenant b", "internal.example.com", 0.99),
		}}
		strategy := NewSemanticStrategy(index, okEmbed)

		results, err := strategy.Search(context.Background(), "secret", 10, req)
		require.NoError(t, err)
		assert.Empty(t, results, "Expected no cross-tenant results")
	})

	t.Run("Embedding failure is a strategy error", func(t *testing.T) {
		strategy := NewSemanticStrategy(&fakeVectorIndex{}, failEmbed)

		results, err := strategy.Search(context.Background(), "vector search", 10, req)
		assert.Nil(t, results)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmbeddingUnavailable)

		var strategyErr *StrategyError
		require.ErrorAs(t, err, &strategyErr)
		assert.Equal(t, model.SearchTypeSemantic, strategyErr.Strategy)
	})
}

func TestKeywordStrategy(t *testing.T) {
	req := &model.RetrievalRequest{Query: "python tutorial", TenantID: "tenant-a", Mode: model.SearchModeKeyword, TopK: 5}

	t.Run("Extracted terms reach the index", func(t *testing.T) {
		index := &fakeFulltextIndex{}
		strategy := NewKeywordStrategy(index)

		_, err := strategy.Search(context.Background(), "How do I install the python tutorial?", 10, req)
		require.NoError(t, err)
		require.Len(t, index.calls, 1)
		assert.Equal(t, []string{"install", "python", "tutorial"}, index.calls[0].terms)
		assert.Equal(t, "tenant-a", index.calls[0].tenantID)
	})

	t.Run("Matches chunks containing any term", func(t *testing.T) {
		index := &fakeFulltextIndex{chunks: []*model.Chunk{
			testChunk("tenant-a", "A python tutorial for beginners", "docs.example.com", 0.8),
			testChunk("tenant-a", "Unrelated cooking recipes", "food.example.com", 0.5),
		}}
		strategy := NewKeywordStrategy(index)

		results, err := strategy.Search(context.Background(), "python tutorial", 10, req)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, model.SearchTypeKeyword, results[0].SearchType)
		assert.Contains(t, results[0].Text, "python tutorial")
	})

	t.Run("Empty query yields no results and no index call", func(t *testing.T) {
		index := &fakeFulltextIndex{}
		strategy := NewKeywordStrategy(index)

		results, err := strategy.Search(context.Background(), "   ", 10, req)
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Empty(t, index.calls)
	})
}

func TestDomainFilteredStrategy(t *testing.T) {
	req := &model.RetrievalRequest{Query: "setup guide on docs.example.com", TenantID: "tenant-a", Mode: model.SearchModeDomain, TopK: 5}

	t.Run("No hints means no search", func(t *testing.T) {
		index := &fakeVectorIndex{}
		strategy := NewDomainFilteredStrategy(index, okEmbed)

		results, err := strategy.Search(context.Background(), "transaction isolation levels", 10, req)
		require.NoError(t, err)
		assert.Nil(t, results, "Expected strategy not to fire without domain hints")
		assert.Empty(t, index.domainCalls)
	})

	t.Run("Hint scopes the similarity search", func(t *testing.T) {
		index := &fakeVectorIndex{chunks: []*model.Chunk{
			testChunk("tenant-a", "setup guide", "docs.example.com", 0.8),
			testChunk("tenant-a", "marketing page", "www.example.org", 0.9),
		}}
		strategy := NewDomainFilteredStrategy(index, okEmbed)

		results, err := strategy.Search(context.Background(), "setup guide on docs.example.com", 10, req)
		require.NoError(t, err)
		require.Len(t, index.domainCalls, 1)
		assert.Equal(t, "docs.example.com", index.domainCalls[0].hint)
		require.Len(t, results, 1)
		assert.Equal(t, "setup guide", results[0].Text)
	})

	t.Run("Scores are scaled by hint specificity", func(t *testing.T) {
		index := &fakeVectorIndex{chunks: []*model.Chunk{
			testChunk("tenant-a", "release notes", "blog.example.com", 0.8),
		}}
		strategy := NewDomainFilteredStrategy(index, okEmbed)

		results, err := strategy.Search(context.Background(), "release notes on the blog", 10, req)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 0.8*0.75, results[0].OriginalScore, 1e-9, "Expected similarity scaled by subdomain word weight")
	})

	t.Run("Budget is split across hints by specificity", func(t *testing.T) {
		index := &fakeVectorIndex{}
		strategy := NewDomainFilteredStrategy(index, okEmbed)

		_, err := strategy.Search(context.Background(), "compare docs.example.com with the github version", 10, req)
		require.NoError(t, err)
		require.Len(t, index.domainCalls, 2)
		total := index.domainCalls[0].limit + index.domainCalls[1].limit
		assert.LessOrEqual(t, total, 11, "Expected combined hint budgets near the overall limit")
		assert.Greater(t, index.domainCalls[0].limit, index.domainCalls[1].limit-2, "Expected stronger hint to get at least a comparable budget")
		for _, call := range index.domainCalls {
			assert.GreaterOrEqual(t, call.limit, 1, "Expected every hint at least one slot")
		}
	})

	t.Run("Embedding failure is a strategy error", func(t *testing.T) {
		strategy := NewDomainFilteredStrategy(&fakeVectorIndex{}, failEmbed)

		_, err := strategy.Search(context.Background(), "setup guide on docs.example.com", 10, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
	})
}
