// Package pipeline provides the model-backed functions of the retrieval
// engine: query embedding and cross-encoder scoring.
package pipeline

// EmbedFunc is a function that generates an embedding for a text
type EmbedFunc func(text string) ([]float32, error)

// EmbedManyFunc is a function that generates embeddings for multiple texts in one call
type EmbedManyFunc func(texts []string) ([][]float32, error)

// CrossEncodeFunc scores each (query, passage) pair jointly with a pairwise
// relevance model and returns one score per passage.
type CrossEncodeFunc func(query string, passages []string) ([]float64, error)
