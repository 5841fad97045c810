package testutils

import (
	"context"

	"github.com/papercomputeco/stacks/pkg/vector"
)

// MockVectorDriver is a test vector driver that records upserts and returns
// configurable query results.
type MockVectorDriver struct {
	// UpsertBatches accumulates each batch passed to Upsert.
	UpsertBatches [][]vector.Document

	// Results is returned by Query, clipped to topK.
	Results []vector.QueryResult

	// EnsureCalls counts EnsureCollection invocations.
	EnsureCalls int

	// Missing causes Query and Count to report ErrCollectionNotFound
	// until EnsureCollection is called.
	Missing bool

	// FailUpsert causes Upsert to return ErrConnection.
	FailUpsert bool
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{
		UpsertBatches: make([][]vector.Document, 0),
		Results:       make([]vector.QueryResult, 0),
	}
}

func (m *MockVectorDriver) EnsureCollection(_ context.Context) error {
	m.EnsureCalls++
	m.Missing = false
	return nil
}

func (m *MockVectorDriver) Upsert(_ context.Context, docs []vector.Document) error {
	if m.FailUpsert {
		return vector.ErrConnection
	}
	batch := make([]vector.Document, len(docs))
	copy(batch, docs)
	m.UpsertBatches = append(m.UpsertBatches, batch)
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int) ([]vector.QueryResult, error) {
	if m.Missing {
		return nil, vector.ErrCollectionNotFound
	}
	if len(m.Results) < topK {
		return m.Results, nil
	}
	return m.Results[:topK], nil
}

func (m *MockVectorDriver) Count(_ context.Context) (int, error) {
	if m.Missing {
		return 0, vector.ErrCollectionNotFound
	}
	total := 0
	for _, batch := range m.UpsertBatches {
		total += len(batch)
	}
	return total, nil
}

// Documents flattens all upserted batches into a single slice.
func (m *MockVectorDriver) Documents() []vector.Document {
	docs := make([]vector.Document, 0)
	for _, batch := range m.UpsertBatches {
		docs = append(docs, batch...)
	}
	return docs
}

func (m *MockVectorDriver) Close() error {
	return nil
}

var _ vector.Driver = (*MockVectorDriver)(nil)
