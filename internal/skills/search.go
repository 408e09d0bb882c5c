package skills

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mraso/portfolio/internal/models"
)

// Default result limits for relevance search.
const (
	DefaultSearchLimit     = 5
	DefaultMultiQueryLimit = 10
)

// multiQueryContextSeparator joins matching contexts when a skill is hit
// by more than one query.
const multiQueryContextSeparator = " | "

// SearchResult is one ranked hit from relevance search.
type SearchResult struct {
	Skill           models.Skill         `json:"skill"`
	Category        models.SkillCategory `json:"category"`
	RelevanceScore  int                  `json:"relevance_score"`
	MatchingContext string               `json:"matching_context"`
}

// SearchSemantic scores every skill against the query, drops non-positive
// scores, and returns the top results by descending relevance. Each result
// carries the snippet that matched and the skill's owning category.
func (r *Repository) SearchSemantic(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	var results []SearchResult
	for _, cat := range categories {
		for _, skill := range cat.Skills {
			score := RelevanceScore(skill, query, now)
			if score <= 0 {
				continue
			}
			results = append(results, SearchResult{
				Skill:           skill,
				Category:        cat,
				RelevanceScore:  score,
				MatchingContext: matchingContext(skill, query),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SearchMultiQuery runs the single-query search for each query and merges
// results by skill ID, summing scores and joining matching contexts, so
// skills hit by more queries rank higher.
func (r *Repository) SearchMultiQuery(ctx context.Context, queries []string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = DefaultMultiQueryLimit
	}

	merged := make(map[string]*SearchResult)
	var order []string

	for _, query := range queries {
		results, err := r.SearchSemantic(ctx, query, limit)
		if err != nil {
			return nil, err
		}

		for _, result := range results {
			existing, ok := merged[result.Skill.ID]
			if ok {
				existing.RelevanceScore += result.RelevanceScore
				existing.MatchingContext += multiQueryContextSeparator + result.MatchingContext
				continue
			}
			combined := result
			merged[result.Skill.ID] = &combined
			order = append(order, result.Skill.ID)
		}
	}

	out := make([]SearchResult, 0, len(order))
	for _, id := range order {
		out = append(out, *merged[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// matchingContext picks the snippet that explains why a skill matched:
// the first matching achievement, then impact, then experience highlight,
// then the matching technology list, falling back to the first achievement
// or the skill name.
func matchingContext(skill models.Skill, query string) string {
	needle := strings.ToLower(query)

	for _, ach := range skill.Achievements {
		if strings.Contains(strings.ToLower(ach.Description), needle) {
			return ach.Description
		}
		if ach.Impact != "" && strings.Contains(strings.ToLower(ach.Impact), needle) {
			return ach.Impact
		}
	}

	for _, exp := range skill.Experiences {
		if strings.Contains(strings.ToLower(exp.Highlight), needle) {
			return fmt.Sprintf("%s: %s", exp.Company, exp.Highlight)
		}
	}

	var matchingTechs []string
	for _, tech := range skill.Technologies {
		if strings.Contains(strings.ToLower(tech.Name), needle) {
			matchingTechs = append(matchingTechs, tech.Name)
		}
	}
	if len(matchingTechs) > 0 {
		return "Technologies: " + strings.Join(matchingTechs, ", ")
	}

	if len(skill.Achievements) > 0 {
		return skill.Achievements[0].Description
	}
	return skill.Name
}
