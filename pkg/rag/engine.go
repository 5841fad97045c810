// Package rag wires retrieval, context assembly, and generation into a
// single question-answering engine.
package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/pkg/llm"
	"github.com/papercomputeco/stacks/pkg/prompt"
	"github.com/papercomputeco/stacks/pkg/retrieval"
	"github.com/papercomputeco/stacks/pkg/vector"
)

// Options tune a single engine instance. Zero values fall back to the
// package defaults.
type Options struct {
	Model           string
	TopK            int
	PerItemChars    int
	TotalChars      int
	Temperature     float64
	MaxOutputTokens int
}

// Source identifies a document that contributed to an answer.
type Source struct {
	URL   string  `json:"url"`
	Score float32 `json:"score"`
}

// Answer is the result of one question: the generated text, the context it
// was grounded in, and the documents that context came from.
type Answer struct {
	Text    string   `json:"text"`
	Context string   `json:"context"`
	Sources []Source `json:"sources"`
}

// Engine answers questions over the ingested collection.
type Engine struct {
	retriever *retrieval.Retriever
	generator llm.Generator
	opts      Options
	logger    *zap.Logger
}

// NewEngine creates an engine over the given retriever and generator.
func NewEngine(retriever *retrieval.Retriever, generator llm.Generator, opts Options, logger *zap.Logger) (*Engine, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TopK <= 0 {
		opts.TopK = retrieval.DefaultTopK
	}
	if opts.PerItemChars <= 0 {
		opts.PerItemChars = prompt.DefaultPerItemChars
	}
	if opts.TotalChars <= 0 {
		opts.TotalChars = prompt.DefaultTotalChars
	}

	return &Engine{
		retriever: retriever,
		generator: generator,
		opts:      opts,
		logger:    logger,
	}, nil
}

// Ask retrieves context for the query, assembles it under the configured
// budgets, and asks the generator for an answer.
func (e *Engine) Ask(ctx context.Context, query string) (*Answer, error) {
	results, err := e.retriever.Retrieve(ctx, query, e.opts.TopK)
	if err != nil {
		return nil, err
	}

	contextText := prompt.Assemble(results, e.opts.PerItemChars, e.opts.TotalChars)

	e.logger.Debug("assembled context",
		zap.Int("documents", len(results)),
		zap.Int("context_chars", len([]rune(contextText))))

	answer, err := e.generator.Complete(ctx, &llm.ChatRequest{
		Model:       e.opts.Model,
		Messages:    prompt.BuildMessages(contextText, query),
		Temperature: e.opts.Temperature,
		MaxTokens:   e.opts.MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Answer{
		Text:    answer,
		Context: contextText,
		Sources: sourcesOf(results),
	}, nil
}

func sourcesOf(results []vector.QueryResult) []Source {
	sources := make([]Source, len(results))
	for i, r := range results {
		sources[i] = Source{URL: r.SourceURL, Score: r.Score}
	}
	return sources
}
