// Package vector provides interfaces and implementations for vector storage
// and similarity queries over a named collection.
package vector

import "context"

// DefaultTopK is the fallback result count drivers use when Query is
// handed a non-positive topK. Matches the retrieval layer's default.
const DefaultTopK = 3

// Document represents a stored item with its embedding and metadata.
type Document struct {
	// ID is a unique identifier for the document within the collection.
	// Upserting a document with an existing ID overwrites the prior entry.
	ID string

	// Text is the passage content returned by similarity queries.
	Text string

	// SourceURL is attribution metadata for the document. May be empty.
	SourceURL string

	// Embedding is the unit-normalized vector representation of Text.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
// Results are returned in the store's own ranking order; callers must not
// re-sort them.
type QueryResult struct {
	// Text is the stored passage content.
	Text string

	// SourceURL is the stored attribution metadata. Empty if missing.
	SourceURL string

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of embedded documents in a single
// named collection. Implementations must agree with the ingestion side on
// the collection name, or queries fail with ErrCollectionNotFound.
type Driver interface {
	// EnsureCollection creates the collection if it does not exist.
	// Idempotent; called by ingestion before the first upsert.
	EnsureCollection(ctx context.Context) error

	// Upsert stores documents with their embeddings, overwriting any
	// existing documents that share an ID.
	Upsert(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// ranked by the store's native similarity ordering. Fewer than topK
	// results is not an error. Returns ErrCollectionNotFound when the
	// collection has never been created.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the driver.
	Close() error
}
