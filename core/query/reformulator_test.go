package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReformulate(t *testing.T) {
	reformulator := NewReformulator(3)

	t.Run("Original query always first", func(t *testing.T) {
		variants := reformulator.Reformulate("postgres replication")
		require.NotEmpty(t, variants)
		assert.Equal(t, "postgres replication", variants[0], "Expected original query as first variant")
	})

	t.Run("Question rewritten to statement", func(t *testing.T) {
		variants := reformulator.Reformulate("What is the connection pool size?")
		require.GreaterOrEqual(t, len(variants), 2)
		assert.Equal(t, "connection pool size", variants[1], "Expected question prefix and mark stripped")
	})

	t.Run("Synonym expansion produces extra variant", func(t *testing.T) {
		variants := reformulator.Reformulate("pricing for the enterprise plan")
		assert.Contains(t, variants, "cost for the enterprise plan", "Expected synonym variant")
	})

	t.Run("Variants are deduplicated", func(t *testing.T) {
		variants := reformulator.Reformulate("docs")
		for i, a := range variants {
			for j, b := range variants {
				if i != j {
					assert.NotEqual(t, a, b, "Expected no duplicate variants")
				}
			}
		}
	})

	t.Run("Variant count never exceeds maximum", func(t *testing.T) {
		variants := NewReformulator(2).Reformulate("What is the price of the docs guide?")
		assert.LessOrEqual(t, len(variants), 2, "Expected variant list capped at maximum")
	})

	t.Run("Maximum below one keeps the original", func(t *testing.T) {
		variants := NewReformulator(0).Reformulate("hello")
		assert.Equal(t, []string{"hello"}, variants)
	})
}

func TestQuestionToStatement(t *testing.T) {
	t.Run("Strip trailing question mark without prefix", func(t *testing.T) {
		assert.Equal(t, "kafka exactly once", questionToStatement("kafka exactly once?"))
	})

	t.Run("Non-question returns empty", func(t *testing.T) {
		assert.Equal(t, "", questionToStatement("kafka exactly once"))
	})
}
