// Package ingestcmder provides the ingest command for loading a CSV dataset
// into the vector store.
package ingestcmder

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/cmd/stacks/wiring"
	"github.com/papercomputeco/stacks/pkg/cliui"
	"github.com/papercomputeco/stacks/pkg/ingest"
	"github.com/papercomputeco/stacks/pkg/logger"
	"github.com/papercomputeco/stacks/pkg/record"
)

const ingestLongDesc string = `Ingest a CSV dataset into the vector store.

The CSV must have a "text" column; "index" and "source_url" columns are
optional. Records with empty text are dropped. Each batch is embedded with
a single provider call and upserted in one write, so re-running ingestion
over the same dataset overwrites rather than duplicates.

Examples:
  stacks ingest data.csv
  stacks ingest data.csv --batch-size 64`

const ingestShortDesc string = "Ingest a CSV dataset"

type ingestCommander struct {
	batchSize int
	debug     bool

	logger *zap.Logger
}

func NewIngestCmd() *cobra.Command {
	cmder := &ingestCommander{}

	cmd := &cobra.Command{
		Use:   "ingest <csv-path>",
		Short: ingestShortDesc,
		Long:  ingestLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			return cmder.run(cmd.Context(), args[0], configDir)
		},
	}

	cmd.Flags().IntVarP(&cmder.batchSize, "batch-size", "b", ingest.DefaultBatchSize, "Records per embedding batch")

	return cmd
}

func (c *ingestCommander) run(ctx context.Context, csvPath, configDir string) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cfg, err := wiring.LoadConfig(configDir)
	if err != nil {
		return err
	}

	var records []record.Record
	if err := cliui.Step(os.Stdout, "Loading dataset", func() error {
		var loadErr error
		records, loadErr = record.LoadCSVFile(csvPath)
		return loadErr
	}); err != nil {
		return err
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

	pipeline, err := ingest.NewPipeline(embedder, driver, c.logger)
	if err != nil {
		return err
	}

	var count int
	if err := cliui.Step(os.Stdout, "Embedding and storing records", func() error {
		var runErr error
		count, runErr = pipeline.Run(ctx, records, c.batchSize)
		return runErr
	}); err != nil {
		return err
	}

	fmt.Printf("\n  %s Ingested %s records into %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(strconv.Itoa(count)),
		cliui.DimStyle.Render(cfg.Collection.Name),
	)
	return nil
}
