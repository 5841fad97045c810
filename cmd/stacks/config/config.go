// Package configcmder provides the config command for managing persistent
// stacks configuration stored in the .stacks/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent stacks configuration.

Configuration is stored as config.toml in the .stacks/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  collection.name,
  vector_store.provider, vector_store.target, vector_store.db_path,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  generation.target, generation.model, generation.api_key_env,
  generation.temperature, generation.max_output_tokens,
  retrieval.top_k, context.per_item_chars, context.total_chars,
  api.listen

Use subcommands to get, set, or list configuration values:
  stacks config set <key> <value>    Set a configuration value
  stacks config get <key>            Get a configuration value
  stacks config list                 List all configuration values

Examples:
  stacks config set vector_store.provider chroma
  stacks config set embedding.model nomic-embed-text
  stacks config get retrieval.top_k
  stacks config list`

const configShortDesc string = "Manage persistent stacks configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
