package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalRequestValidate(t *testing.T) {
	valid := func() *RetrievalRequest {
		return &RetrievalRequest{
			Query:    "postgres replication",
			TenantID: "tenant-a",
			Mode:     SearchModeHybrid,
			TopK:     10,
		}
	}

	t.Run("Valid request passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("Empty query rejected", func(t *testing.T) {
		req := valid()
		req.Query = ""
		assert.ErrorIs(t, req.Validate(), ErrEmptyQuery)
	})

	t.Run("Missing tenant rejected", func(t *testing.T) {
		req := valid()
		req.TenantID = ""
		assert.ErrorIs(t, req.Validate(), ErrMissingTenantID)
	})

	t.Run("TopK bounds enforced", func(t *testing.T) {
		req := valid()
		req.TopK = 0
		assert.ErrorIs(t, req.Validate(), ErrInvalidTopK)

		req.TopK = MaxTopK + 1
		assert.ErrorIs(t, req.Validate(), ErrInvalidTopK)

		req.TopK = MaxTopK
		assert.NoError(t, req.Validate())
	})

	t.Run("Unknown mode rejected", func(t *testing.T) {
		req := valid()
		req.Mode = "fuzzy"
		assert.ErrorIs(t, req.Validate(), ErrInvalidMode)
	})

	t.Run("All named modes accepted", func(t *testing.T) {
		for _, mode := range []SearchMode{SearchModeHybrid, SearchModeSemantic, SearchModeKeyword, SearchModeDomain} {
			req := valid()
			req.Mode = mode
			assert.NoError(t, req.Validate(), "Expected mode %s to validate", mode)
		}
	})
}
