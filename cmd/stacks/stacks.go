// Package stackscmder
package stackscmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/papercomputeco/stacks/cmd/stacks/ask"
	chatcmder "github.com/papercomputeco/stacks/cmd/stacks/chat"
	configcmder "github.com/papercomputeco/stacks/cmd/stacks/config"
	ingestcmder "github.com/papercomputeco/stacks/cmd/stacks/ingest"
	servecmder "github.com/papercomputeco/stacks/cmd/stacks/serve"
	versioncmder "github.com/papercomputeco/stacks/cmd/version"
)

const stacksLongDesc string = `Stacks answers questions over your own documents.

Ingest a CSV dataset, then ask questions against it:
  stacks ingest data.csv   Embed and store a dataset
  stacks ask "question"    Answer a single question
  stacks chat              Interactive question loop
  stacks serve             Run the HTTP API and browser chat`

const stacksShortDesc string = "Stacks - Question answering over your documents"

func NewStacksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stacks",
		Short: stacksShortDesc,
		Long:  stacksLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory containing config.toml (default: ./.stacks or ~/.stacks)")

	// Add subcommands
	cmd.AddCommand(ingestcmder.NewIngestCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
