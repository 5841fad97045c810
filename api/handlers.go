package api

import (
	_ "embed"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/pkg/llm"
	"github.com/papercomputeco/stacks/pkg/rag"
	"github.com/papercomputeco/stacks/pkg/vector"
)

//go:embed web/index.html
var indexHTML []byte

// AskRequest is the body of POST /v1/ask.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse carries the generated answer and its supporting sources.
type AskResponse struct {
	Answer  string       `json:"answer"`
	Sources []rag.Source `json:"sources"`
}

// HistoryResponse lists a session's turns, oldest first.
type HistoryResponse struct {
	Count int        `json:"count"`
	Turns []rag.Turn `json:"turns"`
}

// handleIndex serves the browser chat page.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexHTML)
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleAsk answers a single question over the ingested collection.
func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "query is required"})
	}

	answer, err := s.engine.Ask(c.Context(), query)
	if err != nil {
		s.logger.Warn("ask failed",
			zap.String("query", query),
			zap.Error(err),
		)
		if errors.Is(err, vector.ErrCollectionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "collection not found, ingest a dataset first"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "failed to answer question"})
	}

	s.history.Append(rag.Turn{
		Query:   query,
		Answer:  answer.Text,
		Sources: answer.Sources,
		AskedAt: time.Now().UTC(),
	})

	return c.JSON(AskResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
	})
}

// handleHistory returns all turns recorded since the server started.
func (s *Server) handleHistory(c *fiber.Ctx) error {
	turns := s.history.Turns()
	return c.JSON(HistoryResponse{
		Count: len(turns),
		Turns: turns,
	})
}
