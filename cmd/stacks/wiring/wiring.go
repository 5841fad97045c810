// Package wiring builds the runtime components the stacks commands share:
// the vector driver, the embedder, the generator, and the engine on top.
package wiring

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/papercomputeco/stacks/pkg/config"
	"github.com/papercomputeco/stacks/pkg/dotdir"
	"github.com/papercomputeco/stacks/pkg/embeddings"
	embeddingutils "github.com/papercomputeco/stacks/pkg/embeddings/utils"
	"github.com/papercomputeco/stacks/pkg/llm"
	"github.com/papercomputeco/stacks/pkg/llm/groq"
	"github.com/papercomputeco/stacks/pkg/rag"
	"github.com/papercomputeco/stacks/pkg/retrieval"
	"github.com/papercomputeco/stacks/pkg/vector"
	vectorutils "github.com/papercomputeco/stacks/pkg/vector/utils"
)

// DBFileName is the sqlite-vec database file inside the .stacks/ directory.
const DBFileName = "stacks.db"

// LoadConfig loads the persistent config, honoring a --config-dir override.
func LoadConfig(configDir string) (*config.Config, error) {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg, err := cfger.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

// ResolveDBPath returns the sqlite-vec database path, defaulting to
// <dotdir>/stacks.db when vector_store.db_path is unset.
func ResolveDBPath(cfg *config.Config, configDir string) (string, error) {
	if cfg.VectorStore.DBPath != "" {
		return cfg.VectorStore.DBPath, nil
	}

	dir, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return "", fmt.Errorf("resolving database path: %w", err)
	}

	return filepath.Join(dir, DBFileName), nil
}

// NewDriver builds the configured vector store driver.
func NewDriver(cfg *config.Config, configDir string, logger *zap.Logger) (vector.Driver, error) {
	dbPath, err := ResolveDBPath(cfg, configDir)
	if err != nil {
		return nil, err
	}

	return vectorutils.NewDriver(&vectorutils.NewDriverOpts{
		ProviderType:   cfg.VectorStore.Provider,
		TargetURL:      cfg.VectorStore.Target,
		DBPath:         dbPath,
		CollectionName: cfg.Collection.Name,
		Dimensions:     cfg.Embedding.Dimensions,
		Logger:         logger,
	})
}

// NewEmbedder builds the configured embedding provider.
func NewEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	return embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
	})
}

// NewGenerator builds the generation backend, reading the API key from the
// environment variable named by generation.api_key_env.
func NewGenerator(cfg *config.Config) (llm.Generator, error) {
	return groq.NewGenerator(groq.Config{
		BaseURL: cfg.Generation.Target,
		APIKey:  os.Getenv(cfg.Generation.APIKeyEnv),
	})
}

// NewEngine assembles the full question-answering engine over the given
// components, with retrieval and context budgets taken from the config.
func NewEngine(cfg *config.Config, embedder embeddings.Embedder, driver vector.Driver, generator llm.Generator, logger *zap.Logger) (*rag.Engine, error) {
	retriever, err := retrieval.NewRetriever(embedder, driver, logger)
	if err != nil {
		return nil, err
	}

	return rag.NewEngine(retriever, generator, rag.Options{
		Model:           cfg.Generation.Model,
		TopK:            cfg.Retrieval.TopK,
		PerItemChars:    cfg.Context.PerItemChars,
		TotalChars:      cfg.Context.TotalChars,
		Temperature:     cfg.Generation.Temperature,
		MaxOutputTokens: cfg.Generation.MaxOutputTokens,
	}, logger)
}
