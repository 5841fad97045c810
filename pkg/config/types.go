package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent stacks configuration stored as config.toml
// in the .stacks/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version     int               `toml:"version"`
	Collection  CollectionConfig  `toml:"collection"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	Generation  GenerationConfig  `toml:"generation"`
	Retrieval   RetrievalConfig   `toml:"retrieval"`
	Context     ContextConfig     `toml:"context"`
	API         APIConfig         `toml:"api"`
}

// CollectionConfig names the vector store collection. Ingestion and
// retrieval both read this value, so the two can never disagree.
type CollectionConfig struct {
	Name string `toml:"name,omitempty"`
}

// VectorStoreConfig holds vector store settings.
type VectorStoreConfig struct {
	// Provider selects the driver: "sqlitevec" or "chroma".
	Provider string `toml:"provider,omitempty"`

	// Target is the server URL for remote providers (e.g. chroma).
	Target string `toml:"target,omitempty"`

	// DBPath is the database file path for local providers (e.g. sqlitevec).
	// Empty means <dotdir>/stacks.db.
	DBPath string `toml:"db_path,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// GenerationConfig holds generation backend settings.
// The API key itself is never persisted; APIKeyEnv names the environment
// variable it is read from.
type GenerationConfig struct {
	Target          string  `toml:"target,omitempty"`
	Model           string  `toml:"model,omitempty"`
	APIKeyEnv       string  `toml:"api_key_env,omitempty"`
	Temperature     float64 `toml:"temperature,omitempty"`
	MaxOutputTokens int     `toml:"max_output_tokens,omitempty"`
}

// RetrievalConfig holds query-time retrieval settings.
type RetrievalConfig struct {
	TopK int `toml:"top_k,omitempty"`
}

// ContextConfig holds the character budgets for prompt context assembly.
type ContextConfig struct {
	PerItemChars int `toml:"per_item_chars,omitempty"`
	TotalChars   int `toml:"total_chars,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"collection.name": {
		get: func(c *Config) string { return c.Collection.Name },
		set: func(c *Config, v string) error { c.Collection.Name = v; return nil },
	},
	"vector_store.provider": {
		get: func(c *Config) string { return c.VectorStore.Provider },
		set: func(c *Config, v string) error { c.VectorStore.Provider = v; return nil },
	},
	"vector_store.target": {
		get: func(c *Config) string { return c.VectorStore.Target },
		set: func(c *Config, v string) error { c.VectorStore.Target = v; return nil },
	},
	"vector_store.db_path": {
		get: func(c *Config) string { return c.VectorStore.DBPath },
		set: func(c *Config, v string) error { c.VectorStore.DBPath = v; return nil },
	},
	"embedding.provider": {
		get: func(c *Config) string { return c.Embedding.Provider },
		set: func(c *Config, v string) error { c.Embedding.Provider = v; return nil },
	},
	"embedding.target": {
		get: func(c *Config) string { return c.Embedding.Target },
		set: func(c *Config, v string) error { c.Embedding.Target = v; return nil },
	},
	"embedding.model": {
		get: func(c *Config) string { return c.Embedding.Model },
		set: func(c *Config, v string) error { c.Embedding.Model = v; return nil },
	},
	"embedding.dimensions": {
		get: func(c *Config) string {
			if c.Embedding.Dimensions == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Embedding.Dimensions), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for embedding.dimensions: %w", err)
			}
			c.Embedding.Dimensions = uint(n)
			return nil
		},
	},
	"generation.target": {
		get: func(c *Config) string { return c.Generation.Target },
		set: func(c *Config, v string) error { c.Generation.Target = v; return nil },
	},
	"generation.model": {
		get: func(c *Config) string { return c.Generation.Model },
		set: func(c *Config, v string) error { c.Generation.Model = v; return nil },
	},
	"generation.api_key_env": {
		get: func(c *Config) string { return c.Generation.APIKeyEnv },
		set: func(c *Config, v string) error { c.Generation.APIKeyEnv = v; return nil },
	},
	"generation.temperature": {
		get: func(c *Config) string {
			return strconv.FormatFloat(c.Generation.Temperature, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for generation.temperature: %w", err)
			}
			c.Generation.Temperature = f
			return nil
		},
	},
	"generation.max_output_tokens": {
		get: func(c *Config) string { return strconv.Itoa(c.Generation.MaxOutputTokens) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for generation.max_output_tokens: %w", err)
			}
			c.Generation.MaxOutputTokens = n
			return nil
		},
	},
	"retrieval.top_k": {
		get: func(c *Config) string { return strconv.Itoa(c.Retrieval.TopK) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("retrieval.top_k must be a positive integer")
			}
			c.Retrieval.TopK = n
			return nil
		},
	},
	"context.per_item_chars": {
		get: func(c *Config) string { return strconv.Itoa(c.Context.PerItemChars) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("context.per_item_chars must be a positive integer")
			}
			c.Context.PerItemChars = n
			return nil
		},
	},
	"context.total_chars": {
		get: func(c *Config) string { return strconv.Itoa(c.Context.TotalChars) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("context.total_chars must be a positive integer")
			}
			c.Context.TotalChars = n
			return nil
		},
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
}
