// Package embeddings
package embeddings

import "context"

// Embedder provides text embedding capabilities.
//
// Ingestion and retrieval must share a single Embedder instance (or at
// least the same provider and model): similarity scores are only
// meaningful when query and document vectors live in the same embedding
// space with the same normalization.
type Embedder interface {
	// EmbedBatch converts a batch of texts into unit-normalized vector
	// embeddings, one per input, in input order. One provider call per
	// batch.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Close releases any resources held by the embedder.
	Close() error
}
