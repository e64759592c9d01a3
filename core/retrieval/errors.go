package retrieval

import (
	"errors"
	"fmt"

	"github.com/siherrmann/retriever/model"
)

// ErrEmbeddingUnavailable marks a strategy failure caused by the embedding
// provider. When every strategy that needs embeddings fails with it and
// keyword search finds nothing, the engine answers with an explicit
// no-relevant-content response instead of an error.
var ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

// StrategyError wraps a recoverable failure of a single strategy. It is
// logged and counted, never propagated; a failing strategy contributes an
// empty result set and must not abort its siblings.
type StrategyError struct {
	Strategy model.SearchType
	Err      error
}

// Error implements the error interface
func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s failed: %v", e.Strategy, e.Err)
}

// Unwrap returns the underlying error
func (e *StrategyError) Unwrap() error {
	return e.Err
}
