// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for runtime data (logs, conversation database)
	BaseDir string

	// HTTP server settings
	Server ServerConfig

	// Locations of the portfolio source documents
	Data DataConfig

	// LLM settings for the chat assistant
	LLM LLMConfig

	// Embedding settings for semantic role search
	Embedding EmbeddingConfig

	// Telemetry opt-out
	TelemetryDisabled bool
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port int

	// Requests per minute allowed per client IP on the chat endpoint
	ChatRateLimit int
}

// DataConfig locates the portfolio source documents.
type DataConfig struct {
	// Directory holding the documents below (default: ./data)
	Dir string

	SkillsFile      string // skill inventory JSON
	ExperiencesFile string // work experience JSON
	ChunksFile      string // NDJSON chunk export
	EmbeddingsFile  string // NDJSON embedding export
}

// LLMConfig holds LLM provider configuration for the chat assistant.
type LLMConfig struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// Provider: "anthropic" or "openai" (auto-detected if empty)
	Provider string
	// Model (provider-specific default if empty)
	Model string
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	// OpenAI API key for embeddings (OPENAI_API_KEY env var)
	APIKey string
	// Model for embeddings (default: text-embedding-3-small)
	Model string
	// Enabled toggles semantic role search (off until an API key is set)
	Enabled bool
}

// Load reads configuration from environment variables on top of the
// defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("PORTFOLIO_BASE_DIR"); dir != "" {
		cfg.BaseDir = dir
	}
	if dir := os.Getenv("PORTFOLIO_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if host := os.Getenv("PORTFOLIO_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("parse PORT: %w", err)
		}
		cfg.Server.Port = p
	}

	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.LLM.AnthropicAPIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.LLM.OpenAIAPIKey = apiKey
		cfg.Embedding.APIKey = apiKey
		cfg.Embedding.Enabled = true
	}
	if provider := os.Getenv("PORTFOLIO_LLM_PROVIDER"); provider != "" {
		cfg.LLM.Provider = provider
	}
	if model := os.Getenv("PORTFOLIO_LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}
	if model := os.Getenv("PORTFOLIO_EMBEDDING_MODEL"); model != "" {
		cfg.Embedding.Model = model
	}

	if os.Getenv("PORTFOLIO_NO_TELEMETRY") != "" {
		cfg.TelemetryDisabled = true
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	for _, dir := range []string{cfg.BaseDir, LogDir(cfg)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
