package vector

import "errors"

var (
	// ErrCollectionNotFound is returned when a query targets a collection
	// that has never been created. It signals that ingestion has not run
	// yet (or ingestion and retrieval disagree on the collection name).
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrEmbedding is returned when embedding generation fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrConnection is returned when the vector store connection fails.
	ErrConnection = errors.New("vector store connection failed")
)
