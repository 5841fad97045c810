// Package chatcmder provides the chat command for an interactive question
// loop over the ingested dataset.
package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/cmd/stacks/wiring"
	"github.com/papercomputeco/stacks/pkg/cliui"
	"github.com/papercomputeco/stacks/pkg/logger"
	"github.com/papercomputeco/stacks/pkg/rag"
	"github.com/papercomputeco/stacks/pkg/vector"
)

var userPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")

const chatLongDesc string = `Start an interactive question loop over the ingested dataset.

Each question is answered independently against the vector store; the loop
keeps a session history but earlier turns do not influence later answers.
Type "exit" or "quit" (or Ctrl+D) to leave.

Examples:
  stacks chat
  stacks chat --top-k 5`

const chatShortDesc string = "Interactive question loop"

type chatCommander struct {
	topK  int
	debug bool

	logger *zap.Logger
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(cmd.Context(), configDir, cmd.Flags().Changed("top-k"))
		},
	}

	cmd.Flags().IntVarP(&cmder.topK, "top-k", "k", 0, "Number of documents to retrieve (default from config)")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, configDir string, topKSet bool) error {
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

	history := rag.NewHistory()

	fmt.Println()
	fmt.Printf("  %s %s\n",
		cliui.KeyStyle.Render("Collection:"),
		cliui.NameStyle.Render(cfg.Collection.Name),
	)
	fmt.Printf("  %s %s\n\n",
		cliui.KeyStyle.Render("Model:"),
		cliui.NameStyle.Render(cfg.Generation.Model),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type a question and press Enter. exit or Ctrl+D to quit."))

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit":
			fmt.Println()
			return nil
		}

		answer, err := engine.Ask(ctx, input)
		if err != nil {
			if errors.Is(err, vector.ErrCollectionNotFound) {
				fmt.Fprintf(os.Stderr, "  %s collection %q not found, run \"stacks ingest\" first\n\n",
					cliui.FailMark, cfg.Collection.Name)
				continue
			}
			fmt.Fprintf(os.Stderr, "  %s %v\n\n", cliui.FailMark, err)
			continue
		}

		history.Append(rag.Turn{
			Query:   input,
			Answer:  answer.Text,
			Sources: answer.Sources,
			AskedAt: time.Now().UTC(),
		})

		printTurn(answer)
	}

	fmt.Println()
	return nil
}

func printTurn(answer *rag.Answer) {
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
		fmt.Printf("%s\n\n", answer.Text)
		return
	}
	fmt.Print(rendered)
}
