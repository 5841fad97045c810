package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/pkg/rag"
)

// Server is the HTTP surface over the question-answering engine. It serves
// a JSON API plus a small browser chat page at the root.
type Server struct {
	config  Config
	engine  *rag.Engine
	history *rag.History
	logger  *zap.Logger
	app     *fiber.App
}

// NewServer creates a new API server.
// The engine is injected to allow sharing with the console surfaces.
func NewServer(config Config, engine *rag.Engine, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:  config,
		engine:  engine,
		history: rag.NewHistory(),
		logger:  logger,
		app:     app,
	}

	app.Get("/", s.handleIndex)
	app.Get("/ping", s.handlePing)
	app.Post("/v1/ask", s.handleAsk)
	app.Get("/v1/history", s.handleHistory)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
