// Package retrieval embeds a query and fetches the nearest documents from
// the vector store.
package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/pkg/embeddings"
	"github.com/papercomputeco/stacks/pkg/vector"
)

// DefaultTopK is the number of documents fetched per query.
const DefaultTopK = vector.DefaultTopK

// Retriever turns a query string into ranked store results. The query is
// embedded with the same provider and normalization as ingestion, so
// distances are comparable.
type Retriever struct {
	embedder embeddings.Embedder
	driver   vector.Driver
	logger   *zap.Logger
}

// NewRetriever creates a retriever over the given embedder and vector driver.
func NewRetriever(embedder embeddings.Embedder, driver vector.Driver, logger *zap.Logger) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if driver == nil {
		return nil, fmt.Errorf("vector driver is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Retriever{
		embedder: embedder,
		driver:   driver,
		logger:   logger,
	}, nil
}

// Retrieve returns up to topK documents for the query, in the order the
// store ranked them. Fewer than topK results means the collection holds
// fewer documents.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	vecs, err := r.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedding query: got %d embeddings for one input", len(vecs))
	}

	results, err := r.driver.Query(ctx, vecs[0], topK)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	r.logger.Debug("retrieved documents",
		zap.Int("top_k", topK),
		zap.Int("results", len(results)))

	return results, nil
}
