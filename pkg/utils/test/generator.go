package testutils

import (
	"context"

	"github.com/papercomputeco/stacks/pkg/llm"
)

// MockGenerator is a test generator that records requests and returns a
// canned completion.
type MockGenerator struct {
	// Requests accumulates every request passed to Complete.
	Requests []*llm.ChatRequest

	// Response is returned by Complete.
	Response string

	// Err, when set, is returned by Complete instead of Response.
	Err error
}

func NewMockGenerator(response string) *MockGenerator {
	return &MockGenerator{
		Requests: make([]*llm.ChatRequest, 0),
		Response: response,
	}
}

func (m *MockGenerator) Complete(_ context.Context, req *llm.ChatRequest) (string, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockGenerator) Close() error {
	return nil
}

var _ llm.Generator = (*MockGenerator)(nil)
