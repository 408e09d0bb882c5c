package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mraso/portfolio/internal/config"
	"github.com/mraso/portfolio/internal/roles"
	"github.com/mraso/portfolio/internal/skills"
)

// fileFetcher reads a document from disk on demand.
func fileFetcher(path string) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		return os.ReadFile(path)
	}
}

// loadSkillRepository builds the lazily cached skill repository.
func loadSkillRepository(cfg *config.Config) *skills.Repository {
	paths := config.GetPaths(cfg)
	return skills.NewRepository(skills.FetcherFunc(fileFetcher(paths.Skills)))
}

// loadRoleRepository builds the eagerly parsed role repository. Chunk
// and embedding documents stay lazy; they are only read when semantic
// search asks for them.
func loadRoleRepository(cfg *config.Config) (*roles.Repository, error) {
	paths := config.GetPaths(cfg)

	doc, err := os.ReadFile(paths.Experiences)
	if err != nil {
		return nil, fmt.Errorf("read work experiences: %w", err)
	}

	return roles.New(roles.Config{
		Document:         doc,
		ChunkFetcher:     roles.FetcherFunc(fileFetcher(paths.Chunks)),
		EmbeddingFetcher: roles.FetcherFunc(fileFetcher(paths.Embeddings)),
	})
}
