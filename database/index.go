package database

import (
	"context"
	"fmt"
	"time"

	"github.com/siherrmann/retriever/helper"
)

// VectorIndexType selects the pgvector index used for similarity search on
// the chunks table.
type VectorIndexType string

const (
	IndexTypeHNSW    VectorIndexType = "hnsw"
	IndexTypeIVFFlat VectorIndexType = "ivfflat"
)

// VectorIndexOptions tunes index creation. Zero values fall back to the
// pgvector defaults for the chosen index type.
type VectorIndexOptions struct {
	// M and EfConstruction apply to HNSW indexes.
	M              int
	EfConstruction int
	// Lists applies to IVFFlat indexes.
	Lists int
}

func (o *VectorIndexOptions) withDefaults() VectorIndexOptions {
	options := VectorIndexOptions{M: 16, EfConstruction: 64, Lists: 100}
	if o == nil {
		return options
	}
	if o.M > 0 {
		options.M = o.M
	}
	if o.EfConstruction > 0 {
		options.EfConstruction = o.EfConstruction
	}
	if o.Lists > 0 {
		options.Lists = o.Lists
	}
	return options
}

// ChangeIndexType rebuilds the vector index on the chunks table with the
// given type. The existing index is dropped first, so similarity searches
// running concurrently fall back to a sequential scan until the new index
// is ready.
func (h *ChunksDBHandler) ChangeIndexType(ctx context.Context, indexType VectorIndexType, options *VectorIndexOptions) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resolved := options.withDefaults()

	var createIndexSQL string
	switch indexType {
	case IndexTypeHNSW:
		createIndexSQL = fmt.Sprintf(
			`CREATE INDEX idx_chunks_embedding ON chunks USING hnsw (embedding vector_cosine_ops) WITH (m = %d, ef_construction = %d);`,
			resolved.M, resolved.EfConstruction,
		)
	case IndexTypeIVFFlat:
		createIndexSQL = fmt.Sprintf(
			`CREATE INDEX idx_chunks_embedding ON chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists = %d);`,
			resolved.Lists,
		)
	default:
		return helper.NewError("change index type", fmt.Errorf("unsupported index type: %s (use 'hnsw' or 'ivfflat')", indexType))
	}

	_, err := h.db.Instance.ExecContext(ctx, `DROP INDEX IF EXISTS idx_chunks_embedding;`)
	if err != nil {
		return helper.NewError("drop index", err)
	}

	h.db.Logger.Info("Dropped existing vector index")

	_, err = h.db.Instance.ExecContext(ctx, createIndexSQL)
	if err != nil {
		return helper.NewError("create index", err)
	}

	h.db.Logger.Info(fmt.Sprintf("Created %s index", indexType))

	return nil
}
