package config

const (
	defaultCollectionName = "knowledge_base"

	defaultVectorProvider = "sqlitevec"
	defaultChromaTarget   = "http://localhost:8000"

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "nomic-embed-text"
	defaultEmbeddingDimensions = 768

	defaultGenerationTarget = "https://api.groq.com/openai/v1"
	defaultGenerationModel  = "llama-3.1-8b-instant"
	defaultAPIKeyEnv        = "GROQ_API_KEY"

	// Generation sampling settings. Temperature is kept low so answers stay
	// anchored to the supplied context.
	defaultTemperature     = 0.2
	defaultMaxOutputTokens = 400

	// Retrieval and context budgets. The character budgets guard against
	// oversized generation requests being rejected by the backend.
	defaultTopK         = 3
	defaultPerItemChars = 1200
	defaultTotalChars   = 4500

	defaultAPIListen = ":8081"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Collection: CollectionConfig{
			Name: defaultCollectionName,
		},
		VectorStore: VectorStoreConfig{
			Provider: defaultVectorProvider,
			Target:   defaultChromaTarget,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Target:     defaultEmbeddingTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		Generation: GenerationConfig{
			Target:          defaultGenerationTarget,
			Model:           defaultGenerationModel,
			APIKeyEnv:       defaultAPIKeyEnv,
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxOutputTokens,
		},
		Retrieval: RetrievalConfig{
			TopK: defaultTopK,
		},
		Context: ContextConfig{
			PerItemChars: defaultPerItemChars,
			TotalChars:   defaultTotalChars,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
	}
}
