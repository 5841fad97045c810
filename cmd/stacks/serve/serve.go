// Package servecmder provides the serve command for running the HTTP API
// and browser chat surface.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/api"
	"github.com/papercomputeco/stacks/cmd/stacks/wiring"
	"github.com/papercomputeco/stacks/pkg/logger"
)

const serveLongDesc string = `Run the stacks HTTP server.

Serves a JSON API and a browser chat page over the ingested dataset:
  GET  /             Browser chat page
  GET  /ping         Health check
  POST /v1/ask       Answer a question
  GET  /v1/history   Turns answered since startup

Examples:
  stacks serve
  stacks serve --listen :9090`

const serveShortDesc string = "Run the HTTP API and browser chat"

type serveCommander struct {
	listen string
	debug  bool

	logger *zap.Logger
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(configDir, cmd.Flags().Changed("listen"))
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address for the server to listen on (default from config)")

	return cmd
}

func (c *serveCommander) run(configDir string, listenSet bool) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cfg, err := wiring.LoadConfig(configDir)
	if err != nil {
		return err
	}
	if listenSet {
		cfg.API.Listen = c.listen
	}

	driver, err := wiring.NewDriver(cfg, configDir, c.logger)
	if err != nil {
		return fmt.Errorf("creating vector driver: %w", err)
	}
	defer driver.Close()

	embedder, err := wiring.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	generator, err := wiring.NewGenerator(cfg)
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}
	defer generator.Close()

	engine, err := wiring.NewEngine(cfg, embedder, driver, generator, c.logger)
	if err != nil {
		return err
	}

	server := api.NewServer(api.Config{ListenAddr: cfg.API.Listen}, engine, c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}
