package model

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashContent(t *testing.T) {
	t.Run("Deterministic for same text", func(t *testing.T) {
		assert.Equal(t, HashContent("same passage"), HashContent("same passage"))
	})

	t.Run("Different texts differ", func(t *testing.T) {
		assert.NotEqual(t, HashContent("passage one"), HashContent("passage two"))
	})

	t.Run("Only the prefix is hashed", func(t *testing.T) {
		prefix := strings.Repeat("a", 200)
		assert.Equal(t, HashContent(prefix+"tail one"), HashContent(prefix+"tail two"),
			"Expected texts sharing the hashed prefix to collide")
	})
}

func TestNewSearchResult(t *testing.T) {
	chunk := &Chunk{
		RID:         uuid.New(),
		ContentRID:  uuid.New(),
		TenantID:    "tenant-a",
		Text:        "pgvector supports hnsw indexes",
		Title:       "Vector Indexing",
		Domain:      "docs.example.com",
		ContentType: "article",
		SourceURL:   "https://docs.example.com/vector",
	}

	result := NewSearchResult(chunk, SearchTypeSemantic, 0.87)

	require.NotNil(t, result)
	assert.Equal(t, chunk.Text, result.Text)
	assert.Equal(t, 0.87, result.OriginalScore)
	assert.Equal(t, SearchTypeSemantic, result.SearchType)
	assert.Equal(t, HashContent(chunk.Text), result.ContentHash)
	assert.Equal(t, "tenant-a", result.Metadata["tenant_id"])
	assert.Equal(t, chunk.ContentRID.String(), result.Metadata["content_id"])
	assert.Equal(t, "docs.example.com", result.Metadata["domain"])
}

func TestFinalScore(t *testing.T) {
	t.Run("Original score without rerank", func(t *testing.T) {
		result := &SearchResult{OriginalScore: 0.4}
		assert.Equal(t, 0.4, result.FinalScore())
	})

	t.Run("Rerank score takes precedence", func(t *testing.T) {
		rerank := 0.9
		result := &SearchResult{OriginalScore: 0.4, RerankScore: &rerank}
		assert.Equal(t, 0.9, result.FinalScore())
	})
}
