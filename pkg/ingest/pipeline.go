// Package ingest loads dataset records into the vector store in fixed
// batches, embedding each batch with a single provider call.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/pkg/embeddings"
	"github.com/papercomputeco/stacks/pkg/record"
	"github.com/papercomputeco/stacks/pkg/vector"
)

// DefaultBatchSize is the number of records embedded and upserted per call.
const DefaultBatchSize = 32

// Pipeline drives ingestion end to end: filter, batch, embed, upsert.
type Pipeline struct {
	embedder embeddings.Embedder
	driver   vector.Driver
	logger   *zap.Logger
}

// NewPipeline creates an ingestion pipeline over the given embedder and
// vector driver.
func NewPipeline(embedder embeddings.Embedder, driver vector.Driver, logger *zap.Logger) (*Pipeline, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if driver == nil {
		return nil, fmt.Errorf("vector driver is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		embedder: embedder,
		driver:   driver,
		logger:   logger,
	}, nil
}

// Run ingests records into the collection and returns the number of records
// actually ingested. Texts are trimmed of surrounding whitespace and records
// left with empty text are dropped. Batches are processed sequentially; the
// first failing batch aborts the run.
func (p *Pipeline) Run(ctx context.Context, records []record.Record, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	kept := make([]record.Record, 0, len(records))
	for _, rec := range records {
		text := strings.TrimSpace(rec.Text)
		if text == "" {
			continue
		}
		rec.Text = text
		kept = append(kept, rec)
	}

	p.logger.Debug("starting ingestion",
		zap.Int("records", len(records)),
		zap.Int("kept", len(kept)),
		zap.Int("batch_size", batchSize))

	if err := p.driver.EnsureCollection(ctx); err != nil {
		return 0, fmt.Errorf("ensuring collection: %w", err)
	}

	for start := 0; start < len(kept); start += batchSize {
		end := start + batchSize
		if end > len(kept) {
			end = len(kept)
		}
		batch := kept[start:end]
		batchIndex := start / batchSize

		if err := p.runBatch(ctx, batch, batchIndex); err != nil {
			return 0, err
		}
	}

	p.logger.Info("ingestion complete", zap.Int("ingested", len(kept)))

	return len(kept), nil
}

func (p *Pipeline) runBatch(ctx context.Context, batch []record.Record, batchIndex int) error {
	texts := make([]string, len(batch))
	for i, rec := range batch {
		texts[i] = rec.Text
	}

	vecs, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding batch %d: %w", batchIndex, err)
	}
	if len(vecs) != len(batch) {
		return fmt.Errorf("embedding batch %d: got %d embeddings for %d records", batchIndex, len(vecs), len(batch))
	}

	docs := make([]vector.Document, len(batch))
	for i, rec := range batch {
		docs[i] = vector.Document{
			ID:        rec.ID,
			Text:      rec.Text,
			SourceURL: rec.SourceURL,
			Embedding: vecs[i],
		}
	}

	if err := p.driver.Upsert(ctx, docs); err != nil {
		return fmt.Errorf("upserting batch %d: %w", batchIndex, err)
	}

	p.logger.Debug("batch ingested",
		zap.Int("batch", batchIndex),
		zap.Int("size", len(batch)))

	return nil
}
