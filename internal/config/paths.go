package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database    string // Conversation/visitor SQLite database
	Skills      string // Skill inventory document
	Experiences string // Work experience document
	Chunks      string // NDJSON chunk export
	Embeddings  string // NDJSON embedding export
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database:    filepath.Join(cfg.BaseDir, "portfolio.db"),
		Skills:      filepath.Join(cfg.Data.Dir, cfg.Data.SkillsFile),
		Experiences: filepath.Join(cfg.Data.Dir, cfg.Data.ExperiencesFile),
		Chunks:      filepath.Join(cfg.Data.Dir, cfg.Data.ChunksFile),
		Embeddings:  filepath.Join(cfg.Data.Dir, cfg.Data.EmbeddingsFile),
	}
}

// LogDir returns the directory server logs are written to.
func LogDir(cfg *Config) string {
	return filepath.Join(cfg.BaseDir, "logs")
}

// DefaultBaseDir returns the default base directory, following the XDG
// data-home convention.
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "portfolio")
}
