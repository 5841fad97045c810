// Package askcmder provides the ask command for one-shot question answering.
package askcmder

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/cmd/stacks/wiring"
	"github.com/papercomputeco/stacks/pkg/cliui"
	"github.com/papercomputeco/stacks/pkg/logger"
	"github.com/papercomputeco/stacks/pkg/rag"
	"github.com/papercomputeco/stacks/pkg/vector"
)

const askLongDesc string = `Ask a single question over the ingested dataset.

Retrieves the closest documents, assembles them into a bounded context, and
asks the generation backend for an answer grounded in that context. The
sources that informed the answer are printed alongside it.

The generation API key is read from the environment variable named by
generation.api_key_env (GROQ_API_KEY by default).

Examples:
  stacks ask "what is a vector database?"
  stacks ask --top-k 5 "how does batching work?"`

const askShortDesc string = "Ask a single question"

type askCommander struct {
	topK  int
	debug bool

	logger *zap.Logger
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(cmd.Context(), args[0], configDir, cmd.Flags().Changed("top-k"))
		},
	}

	cmd.Flags().IntVarP(&cmder.topK, "top-k", "k", 0, "Number of documents to retrieve (default from config)")

	return cmd
}

func (c *askCommander) run(ctx context.Context, question, configDir string, topKSet bool) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cfg, err := wiring.LoadConfig(configDir)
	if err != nil {
		return err
	}
	if topKSet {
		cfg.Retrieval.TopK = c.topK
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

	var answer *rag.Answer
	if err := cliui.Step(os.Stdout, "Answering", func() error {
		var askErr error
		answer, askErr = engine.Ask(ctx, question)
		return askErr
	}); err != nil {
		if errors.Is(err, vector.ErrCollectionNotFound) {
			return fmt.Errorf("collection %q not found, run \"stacks ingest\" first", cfg.Collection.Name)
		}
		return err
	}

	printAnswer(answer)
	return nil
}

func printAnswer(answer *rag.Answer) {
	fmt.Println()
	for i, source := range answer.Sources {
		fmt.Printf("  %s %s\n",
			cliui.KeyStyle.Render(fmt.Sprintf("[%d]", i+1)),
			cliui.SourceStyle.Render(source.URL),
		)
	}
	if len(answer.Sources) > 0 {
		fmt.Println()
	}

	rendered, err := cliui.RenderMarkdown(answer.Text)
	if err != nil {
		fmt.Println(answer.Text)
		return
	}
	fmt.Print(rendered)
}
