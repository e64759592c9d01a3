package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	t.Run("Extract keywords from question", func(t *testing.T) {
		terms := ExtractKeywords("How do I install the python tutorial?")
		assert.Equal(t, []string{"install", "python", "tutorial"}, terms, "Expected stopwords and short terms removed")
	})

	t.Run("Lowercase and strip punctuation", func(t *testing.T) {
		terms := ExtractKeywords("PostgreSQL: indexing, VACUUM!")
		assert.Equal(t, []string{"postgresql", "indexing", "vacuum"}, terms, "Expected normalized alphanumeric terms")
	})

	t.Run("Deduplicate repeated terms", func(t *testing.T) {
		terms := ExtractKeywords("golang golang Golang concurrency")
		assert.Equal(t, []string{"golang", "concurrency"}, terms, "Expected duplicate terms collapsed")
	})

	t.Run("Cap at maximum number of terms", func(t *testing.T) {
		terms := ExtractKeywords("alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima")
		require.Len(t, terms, MaxKeywords, "Expected term list capped")
		assert.Equal(t, "alpha", terms[0], "Expected original term order preserved")
		assert.Equal(t, "juliett", terms[MaxKeywords-1])
	})

	t.Run("Fall back to raw query when nothing survives", func(t *testing.T) {
		terms := ExtractKeywords("is it")
		assert.Equal(t, []string{"is it"}, terms, "Expected raw query as single fallback term")
	})

	t.Run("Empty query returns nil", func(t *testing.T) {
		assert.Nil(t, ExtractKeywords("   "), "Expected nil for blank query")
	})
}

func TestNormalizeTerm(t *testing.T) {
	t.Run("Strip non-alphanumeric runes", func(t *testing.T) {
		assert.Equal(t, "c3po", normalizeTerm("C-3PO!"))
		assert.Equal(t, "", normalizeTerm("..."))
	})
}
