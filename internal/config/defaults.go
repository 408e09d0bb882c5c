package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			ChatRateLimit: 10,
		},

		Data: DataConfig{
			Dir:             "data",
			SkillsFile:      "skills_inventory.json",
			ExperiencesFile: "work_experiences.json",
			ChunksFile:      "experience_chunks.ndjson",
			EmbeddingsFile:  "experience_embeddings.ndjson",
		},

		LLM: LLMConfig{
			Provider: "", // Auto-detect based on available keys
			Model:    "", // Provider-specific defaults
		},

		Embedding: EmbeddingConfig{
			Model:   "text-embedding-3-small",
			Enabled: false,
		},
	}
}
