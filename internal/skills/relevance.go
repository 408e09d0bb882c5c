package skills

import (
	"strings"
	"time"

	"github.com/mraso/portfolio/internal/models"
)

// Scoring weights for relevance ranking. Each factor is scored by its own
// function so weights can change without touching matching logic. Scores
// are unbounded and only meaningful for relative ranking.
const (
	weightNameExact     = 100
	weightNameSubstring = 50
	weightKeyword       = 10
	weightTechnology    = 15
	weightAchievement   = 8
	weightExperience    = 12
)

// RelevanceScore combines all scoring factors for a skill against a
// free-text query. Comparisons are case-insensitive substring matches.
func RelevanceScore(skill models.Skill, query string, now time.Time) int {
	needle := strings.ToLower(query)

	score := nameScore(skill, needle)
	score += keywordScore(skill, needle)
	score += technologyScore(skill, needle)
	score += achievementScore(skill, needle)
	score += experienceScore(skill, needle)
	score += proficiencyBonus(skill.Proficiency)
	score += recencyBonus(skill.LastUsed, now)
	return score
}

func nameScore(skill models.Skill, needle string) int {
	name := strings.ToLower(skill.Name)
	if name == needle {
		return weightNameExact
	}
	if strings.Contains(name, needle) {
		return weightNameSubstring
	}
	return 0
}

func keywordScore(skill models.Skill, needle string) int {
	matches := 0
	for _, kw := range skill.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			matches++
		}
	}
	return matches * weightKeyword
}

func technologyScore(skill models.Skill, needle string) int {
	matches := 0
	for _, tech := range skill.Technologies {
		if strings.Contains(strings.ToLower(tech.Name), needle) {
			matches++
		}
	}
	return matches * weightTechnology
}

func achievementScore(skill models.Skill, needle string) int {
	matches := 0
	for _, ach := range skill.Achievements {
		if strings.Contains(strings.ToLower(ach.Description), needle) ||
			strings.Contains(strings.ToLower(ach.Impact), needle) {
			matches++
		}
	}
	return matches * weightAchievement
}

func experienceScore(skill models.Skill, needle string) int {
	matches := 0
	for _, exp := range skill.Experiences {
		if strings.Contains(strings.ToLower(exp.Highlight), needle) ||
			strings.Contains(strings.ToLower(exp.Company), needle) {
			matches++
		}
	}
	return matches * weightExperience
}

// proficiencyBonus gives a slight boost to stronger tiers. Unrecognized
// tiers score zero rather than failing.
func proficiencyBonus(p models.Proficiency) int {
	switch p {
	case models.ProficiencyExpert:
		return 5
	case models.ProficiencyAdvanced:
		return 3
	case models.ProficiencyIntermediate:
		return 1
	default:
		return 0
	}
}

// recencyBonus boosts skills used recently. A last_used value that does
// not parse earns no bonus.
func recencyBonus(lastUsed string, now time.Time) int {
	t, err := time.Parse("2006-01-02", lastUsed)
	if err != nil {
		return 0
	}

	months := now.Sub(t).Hours() / (24 * 30)
	switch {
	case months < 6:
		return 3
	case months < 12:
		return 2
	case months < 24:
		return 1
	default:
		return 0
	}
}
