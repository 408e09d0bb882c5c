// Package skills loads the skills inventory and provides query, filter
// and relevance-search operations over it.
package skills

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mraso/portfolio/internal/models"
)

// ErrSkillNotFound is returned when no skill matches the requested ID.
var ErrSkillNotFound = errors.New("skill not found")

// Fetcher retrieves the raw skills inventory document. Implementations
// may read from disk, an embedded asset, or a remote document store.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// Repository owns the cached skills inventory. The catalog is read-only:
// every query returns fresh projections, and the cache lives until
// ClearCache is called. Safe for concurrent use.
type Repository struct {
	fetcher Fetcher
	now     func() time.Time

	mu    sync.Mutex
	cache *models.SkillInventory
}

// NewRepository creates a repository backed by the given fetcher.
func NewRepository(fetcher Fetcher) *Repository {
	return NewRepositoryWithClock(fetcher, time.Now)
}

// NewRepositoryWithClock creates a repository with an injected clock.
// Recency calculations use the clock, which makes them testable.
func NewRepositoryWithClock(fetcher Fetcher, now func() time.Time) *Repository {
	return &Repository{
		fetcher: fetcher,
		now:     now,
	}
}

// Data fetches and memoizes the full inventory document. Repeated calls
// return the cached document without refetching; the lock guarantees the
// fetcher runs at most once per cache lifetime even under concurrent
// first loads.
func (r *Repository) Data(ctx context.Context) (*models.SkillInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache != nil {
		return r.cache, nil
	}

	raw, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("load skills inventory: %w", err)
	}

	var inventory models.SkillInventory
	if err := json.Unmarshal(raw, &inventory); err != nil {
		return nil, fmt.Errorf("parse skills inventory: %w", err)
	}

	r.cache = &inventory
	return r.cache, nil
}

// ClearCache resets the memoized document so the next access refetches.
func (r *Repository) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = nil
}

// Categories returns all skill categories sorted ascending by display order.
func (r *Repository) Categories(ctx context.Context) ([]models.SkillCategory, error) {
	data, err := r.Data(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]models.SkillCategory, len(data.Categories))
	copy(categories, data.Categories)
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})
	return categories, nil
}

// CategoryByID returns the category with the given ID, or ErrSkillNotFound.
func (r *Repository) CategoryByID(ctx context.Context, categoryID string) (models.SkillCategory, error) {
	categories, err := r.Categories(ctx)
	if err != nil {
		return models.SkillCategory{}, err
	}
	for _, cat := range categories {
		if cat.ID == categoryID {
			return cat, nil
		}
	}
	return models.SkillCategory{}, fmt.Errorf("category %q: %w", categoryID, ErrSkillNotFound)
}

// AllSkills flattens every category's skills into one sequence, in
// category order then in-category order.
func (r *Repository) AllSkills(ctx context.Context) ([]models.Skill, error) {
	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}

	var skills []models.Skill
	for _, cat := range categories {
		skills = append(skills, cat.Skills...)
	}
	return skills, nil
}

// SkillByID scans categories for the skill and returns it with its owning
// category, or ErrSkillNotFound.
func (r *Repository) SkillByID(ctx context.Context, skillID string) (models.Skill, models.SkillCategory, error) {
	categories, err := r.Categories(ctx)
	if err != nil {
		return models.Skill{}, models.SkillCategory{}, err
	}

	for _, cat := range categories {
		for _, skill := range cat.Skills {
			if skill.ID == skillID {
				return skill, cat, nil
			}
		}
	}
	return models.Skill{}, models.SkillCategory{}, fmt.Errorf("skill %q: %w", skillID, ErrSkillNotFound)
}

// SkillsByCategory returns the skills of one category, empty when the
// category does not exist.
func (r *Repository) SkillsByCategory(ctx context.Context, categoryID string) ([]models.Skill, error) {
	cat, err := r.CategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ErrSkillNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cat.Skills, nil
}

// SkillsByProficiency returns skills at exactly the given tier.
func (r *Repository) SkillsByProficiency(ctx context.Context, level models.Proficiency) ([]models.Skill, error) {
	return r.filterAll(ctx, func(s models.Skill) bool {
		return s.Proficiency == level
	})
}

// SkillsByExperience returns skills used in the given role.
func (r *Repository) SkillsByExperience(ctx context.Context, roleID string) ([]models.Skill, error) {
	return r.filterAll(ctx, func(s models.Skill) bool {
		for _, exp := range s.Experiences {
			if exp.RoleID == roleID {
				return true
			}
		}
		return false
	})
}

// SkillsByCompany returns skills used at companies whose name contains
// the query (case-insensitive).
func (r *Repository) SkillsByCompany(ctx context.Context, company string) ([]models.Skill, error) {
	needle := strings.ToLower(company)
	return r.filterAll(ctx, func(s models.Skill) bool {
		for _, exp := range s.Experiences {
			if strings.Contains(strings.ToLower(exp.Company), needle) {
				return true
			}
		}
		return false
	})
}

// Search returns skills where any of name, keywords, technology names,
// achievement text, or experience text contains the keyword
// (case-insensitive). A single match includes the skill.
func (r *Repository) Search(ctx context.Context, keyword string) ([]models.Skill, error) {
	needle := strings.ToLower(keyword)
	return r.filterAll(ctx, func(s models.Skill) bool {
		return skillMatches(s, needle)
	})
}

func skillMatches(s models.Skill, needle string) bool {
	if strings.Contains(strings.ToLower(s.Name), needle) {
		return true
	}
	for _, kw := range s.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	for _, tech := range s.Technologies {
		if strings.Contains(strings.ToLower(tech.Name), needle) {
			return true
		}
	}
	for _, ach := range s.Achievements {
		if strings.Contains(strings.ToLower(ach.Description), needle) ||
			strings.Contains(strings.ToLower(ach.Impact), needle) {
			return true
		}
	}
	for _, exp := range s.Experiences {
		if strings.Contains(strings.ToLower(exp.Highlight), needle) ||
			strings.Contains(strings.ToLower(exp.Company), needle) {
			return true
		}
	}
	return false
}

// SkillsByProficiencyOrder returns all skills stably sorted expert first.
// Unrecognized tiers sort last.
func (r *Repository) SkillsByProficiencyOrder(ctx context.Context) ([]models.Skill, error) {
	skills, err := r.AllSkills(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Proficiency.Rank() < skills[j].Proficiency.Rank()
	})
	return skills, nil
}

// RecentSkills returns skills whose last_used date falls within the past
// N months. Non-positive months defaults to 12.
func (r *Repository) RecentSkills(ctx context.Context, months int) ([]models.Skill, error) {
	if months <= 0 {
		months = 12
	}
	cutoff := r.now().AddDate(0, -months, 0).Format("2006-01-02")

	return r.filterAll(ctx, func(s models.Skill) bool {
		return s.LastUsed >= cutoff
	})
}

func (r *Repository) filterAll(ctx context.Context, keep func(models.Skill) bool) ([]models.Skill, error) {
	skills, err := r.AllSkills(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Skill
	for _, s := range skills {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out, nil
}
