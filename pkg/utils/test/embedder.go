package testutils

import (
	"context"
	"fmt"

	"github.com/papercomputeco/stacks/pkg/embeddings"
)

// MockEmbedder is a test embedder that returns predictable embeddings
type MockEmbedder struct {
	Embeddings map[string][]float32

	// BatchSizes records the length of every batch passed to EmbedBatch.
	BatchSizes []int

	// FailOn causes EmbedBatch to return an error when any input text matches
	FailOn string
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		Embeddings: make(map[string][]float32),
	}
}

func (m *MockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.BatchSizes = append(m.BatchSizes, len(texts))

	vecs := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if m.FailOn != "" && text == m.FailOn {
			return nil, fmt.Errorf("mock embedding failure for: %s", text)
		}

		if emb, ok := m.Embeddings[text]; ok {
			vecs = append(vecs, emb)
			continue
		}

		// Return a default embedding for any text
		vecs = append(vecs, []float32{0.1, 0.2, 0.3})
	}

	return vecs, nil
}

// Calls reports how many times EmbedBatch was invoked.
func (m *MockEmbedder) Calls() int {
	return len(m.BatchSizes)
}

func (m *MockEmbedder) Close() error {
	return nil
}

var _ embeddings.Embedder = (*MockEmbedder)(nil)
