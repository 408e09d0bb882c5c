// Package roles loads the work-experience catalog and the retrieval
// chunks/embeddings derived from it.
package roles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/mraso/portfolio/internal/models"
)

// ErrRoleNotFound is returned when no role matches the requested ID.
var ErrRoleNotFound = errors.New("role not found")

// Fetcher retrieves a raw document (chunks or embeddings NDJSON).
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Config holds the role catalog document and the optional fetchers for
// the chunk and embedding files.
type Config struct {
	// Document is the work-experience JSON, available at startup.
	Document []byte

	// ChunkFetcher and EmbeddingFetcher load the NDJSON files on demand.
	// Either may be nil when the corresponding data is not served.
	ChunkFetcher     Fetcher
	EmbeddingFetcher Fetcher
}

// Repository serves the role catalog. Roles load eagerly at construction;
// chunks and embeddings load lazily and are memoized. Safe for
// concurrent use.
type Repository struct {
	data models.WorkExperienceData

	chunks     *resource[models.VectorChunk]
	embeddings *resource[models.EmbeddingRecord]
}

// New parses the work-experience document and builds the repository.
func New(cfg Config) (*Repository, error) {
	var data models.WorkExperienceData
	if err := json.Unmarshal(cfg.Document, &data); err != nil {
		return nil, fmt.Errorf("parse work experiences: %w", err)
	}

	return &Repository{
		data:       data,
		chunks:     newResource[models.VectorChunk](cfg.ChunkFetcher),
		embeddings: newResource[models.EmbeddingRecord](cfg.EmbeddingFetcher),
	}, nil
}

// Roles returns the full role catalog in document order.
func (r *Repository) Roles() []models.RoleRecord {
	return r.data.Roles
}

// RoleByID returns the role with the given ID, or ErrRoleNotFound.
func (r *Repository) RoleByID(roleID string) (models.RoleRecord, error) {
	for _, role := range r.data.Roles {
		if role.RoleID == roleID {
			return role, nil
		}
	}
	return models.RoleRecord{}, fmt.Errorf("role %q: %w", roleID, ErrRoleNotFound)
}

// CompanyGroup is one company's roles, in catalog order.
type CompanyGroup struct {
	Company string              `json:"company"`
	Roles   []models.RoleRecord `json:"roles"`
}

// RolesByCompany groups roles by company, with groups ordered by first
// appearance and each group preserving catalog order. The sum of group
// sizes equals the total role count.
func (r *Repository) RolesByCompany() []CompanyGroup {
	byCompany := make(map[string]int)
	var groups []CompanyGroup

	for _, role := range r.data.Roles {
		idx, ok := byCompany[role.Company]
		if !ok {
			idx = len(groups)
			byCompany[role.Company] = idx
			groups = append(groups, CompanyGroup{Company: role.Company})
		}
		groups[idx].Roles = append(groups[idx].Roles, role)
	}
	return groups
}

// AllTechnologies returns the deduplicated, alphabetically sorted union
// of all roles' core technologies.
func (r *Repository) AllTechnologies() []string {
	seen := make(map[string]bool)
	var techs []string

	for _, role := range r.data.Roles {
		for _, tech := range role.CoreTech {
			if !seen[tech] {
				seen[tech] = true
				techs = append(techs, tech)
			}
		}
	}

	sort.Strings(techs)
	return techs
}

// RecentRoles returns the most recent roles by start date, descending.
// Ties keep catalog order. Non-positive limit defaults to 5.
func (r *Repository) RecentRoles(limit int) []models.RoleRecord {
	if limit <= 0 {
		limit = 5
	}

	recent := make([]models.RoleRecord, len(r.data.Roles))
	copy(recent, r.data.Roles)

	// "YYYY-MM" strings compare lexically in chronological order.
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timeframe.Start > recent[j].Timeframe.Start
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// DatasetMetadata summarizes the loaded catalog.
func (r *Repository) DatasetMetadata() models.DatasetMetadata {
	return models.DatasetMetadata{
		SchemaVersion:  r.data.SchemaVersion,
		GeneratedAt:    r.data.GeneratedAt,
		SourceDocument: r.data.SourceDocument,
		TotalRoles:     len(r.data.Roles),
	}
}

// Chunks loads and memoizes the chunk file.
func (r *Repository) Chunks(ctx context.Context) ([]models.VectorChunk, error) {
	return r.chunks.load(ctx, "chunks")
}

// Embeddings loads and memoizes the embedding file.
func (r *Repository) Embeddings(ctx context.Context) ([]models.EmbeddingRecord, error) {
	return r.embeddings.load(ctx, "embeddings")
}

// ChunksByRole returns the chunks whose metadata references the role.
func (r *Repository) ChunksByRole(ctx context.Context, roleID string) ([]models.VectorChunk, error) {
	chunks, err := r.Chunks(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.VectorChunk
	for _, chunk := range chunks {
		if chunk.Metadata.RoleID == roleID {
			out = append(out, chunk)
		}
	}
	return out, nil
}
