package skills

import (
	"context"
	"sort"

	"github.com/mraso/portfolio/internal/models"
)

// TechnologyStats aggregates every skill that references one technology.
type TechnologyStats struct {
	SkillIDs []string       `json:"skill_ids"`
	Skills   []models.Skill `json:"skills"`
	// ExperienceCount is the total number of experience links across all
	// skills referencing this technology.
	ExperienceCount int    `json:"experience_count"`
	FirstUsed       string `json:"first_used"`
	LastUsed        string `json:"last_used"`
	Category        string `json:"category"`
}

// TechnologyIndex maps technology name to aggregate usage stats across
// all skills that reference it.
func (r *Repository) TechnologyIndex(ctx context.Context) (map[string]*TechnologyStats, error) {
	skills, err := r.AllSkills(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*TechnologyStats)
	for _, skill := range skills {
		for _, tech := range skill.Technologies {
			stats, ok := index[tech.Name]
			if !ok {
				stats = &TechnologyStats{
					FirstUsed: skill.LastUsed,
					LastUsed:  skill.LastUsed,
					Category:  tech.Category,
				}
				index[tech.Name] = stats
			}

			stats.SkillIDs = append(stats.SkillIDs, skill.ID)
			stats.Skills = append(stats.Skills, skill)
			stats.ExperienceCount += len(skill.Experiences)

			if skill.LastUsed > stats.LastUsed {
				stats.LastUsed = skill.LastUsed
			}

			// Earliest use comes from experience start dates, falling
			// back to last_used when the skill has no experiences.
			first := skill.LastUsed
			for _, exp := range skill.Experiences {
				if exp.Timeframe.Start < first {
					first = exp.Timeframe.Start
				}
			}
			if first < stats.FirstUsed {
				stats.FirstUsed = first
			}
		}
	}

	return index, nil
}

// Statistics is the aggregate report over the whole inventory.
type Statistics struct {
	TotalSkills            int                        `json:"total_skills"`
	TotalCategories        int                        `json:"total_categories"`
	TotalTechnologies      int                        `json:"total_technologies"`
	ByProficiency          map[models.Proficiency]int `json:"by_proficiency"`
	AverageYearsExperience float64                    `json:"average_years_experience"`
	MostCommonTechnologies []TechnologyCount          `json:"most_common_technologies"`
}

// TechnologyCount pairs a technology name with its contributing-skill count.
type TechnologyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics computes totals, per-tier counts, mean years of experience
// and the ten most-referenced technologies.
func (r *Repository) Statistics(ctx context.Context) (*Statistics, error) {
	allSkills, err := r.AllSkills(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}
	techIndex, err := r.TechnologyIndex(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalSkills:       len(allSkills),
		TotalCategories:   len(categories),
		TotalTechnologies: len(techIndex),
		ByProficiency: map[models.Proficiency]int{
			models.ProficiencyExpert:       0,
			models.ProficiencyAdvanced:     0,
			models.ProficiencyIntermediate: 0,
			models.ProficiencyFamiliar:     0,
		},
	}

	var yearsSum float64
	for _, skill := range allSkills {
		stats.ByProficiency[skill.Proficiency]++
		yearsSum += skill.YearsExperience
	}
	if len(allSkills) > 0 {
		stats.AverageYearsExperience = yearsSum / float64(len(allSkills))
	}

	counts := make([]TechnologyCount, 0, len(techIndex))
	for name, ts := range techIndex {
		counts = append(counts, TechnologyCount{Name: name, Count: len(ts.SkillIDs)})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count == counts[j].Count {
			return counts[i].Name < counts[j].Name
		}
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > 10 {
		counts = counts[:10]
	}
	stats.MostCommonTechnologies = counts

	return stats, nil
}
