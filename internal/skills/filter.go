package skills

import (
	"context"
	"strings"

	"github.com/mraso/portfolio/internal/models"
)

// Filters is a composite skill filter. All supplied criteria must hold
// (AND semantics), except Categories which replaces the candidate pool
// with the union of the named categories' skills before the other
// filters narrow it.
type Filters struct {
	Categories      []string             `json:"categories,omitempty"`
	Proficiency     []models.Proficiency `json:"proficiency,omitempty"`
	Technologies    []string             `json:"technologies,omitempty"`
	Companies       []string             `json:"companies,omitempty"`
	YearsExperience *YearsRange          `json:"years_experience,omitempty"`
	DateRange       *DateRange           `json:"date_range,omitempty"`
}

// YearsRange is an inclusive numeric range of years of experience.
type YearsRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DateRange is an inclusive range of ISO date strings. Comparison is
// lexical, which is correct for YYYY-MM-DD style values.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Filter applies the composite filter. Categories must be applied first
// because it swaps out the base population rather than narrowing it.
func (r *Repository) Filter(ctx context.Context, filters Filters) ([]models.Skill, error) {
	var skills []models.Skill
	var err error

	if len(filters.Categories) > 0 {
		for _, catID := range filters.Categories {
			catSkills, err := r.SkillsByCategory(ctx, catID)
			if err != nil {
				return nil, err
			}
			skills = append(skills, catSkills...)
		}
	} else {
		skills, err = r.AllSkills(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(filters.Proficiency) > 0 {
		skills = keepSkills(skills, func(s models.Skill) bool {
			for _, p := range filters.Proficiency {
				if s.Proficiency == p {
					return true
				}
			}
			return false
		})
	}

	if len(filters.Technologies) > 0 {
		skills = keepSkills(skills, func(s models.Skill) bool {
			for _, tech := range s.Technologies {
				name := strings.ToLower(tech.Name)
				for _, term := range filters.Technologies {
					if strings.Contains(name, strings.ToLower(term)) {
						return true
					}
				}
			}
			return false
		})
	}

	if len(filters.Companies) > 0 {
		skills = keepSkills(skills, func(s models.Skill) bool {
			for _, exp := range s.Experiences {
				company := strings.ToLower(exp.Company)
				for _, term := range filters.Companies {
					if strings.Contains(company, strings.ToLower(term)) {
						return true
					}
				}
			}
			return false
		})
	}

	if filters.YearsExperience != nil {
		yr := filters.YearsExperience
		skills = keepSkills(skills, func(s models.Skill) bool {
			return s.YearsExperience >= yr.Min && s.YearsExperience <= yr.Max
		})
	}

	if filters.DateRange != nil {
		dr := filters.DateRange
		skills = keepSkills(skills, func(s models.Skill) bool {
			return s.LastUsed >= dr.Start && s.LastUsed <= dr.End
		})
	}

	return skills, nil
}

func keepSkills(skills []models.Skill, keep func(models.Skill) bool) []models.Skill {
	var out []models.Skill
	for _, s := range skills {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
