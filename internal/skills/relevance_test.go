package skills

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mraso/portfolio/internal/models"
)

func bareSkill(name string) models.Skill {
	return models.Skill{
		ID:          "s",
		Name:        name,
		Proficiency: models.ProficiencyFamiliar,
		LastUsed:    "2000-01-01", // far in the past, no recency bonus
	}
}

func TestRelevanceScore_ExactNameBeatsSubstring(t *testing.T) {
	exact := RelevanceScore(bareSkill("Python"), "python", testNow)
	substring := RelevanceScore(bareSkill("Python & Scientific Stack"), "python", testNow)

	assert.Equal(t, weightNameExact, exact)
	assert.Equal(t, weightNameSubstring, substring)
	assert.Greater(t, exact, substring)
}

func TestRelevanceScore_NoMatchIsZero(t *testing.T) {
	assert.Equal(t, 0, RelevanceScore(bareSkill("Rust"), "python", testNow))
}

func TestRelevanceScore_KeywordWeight(t *testing.T) {
	skill := bareSkill("Something Else")
	skill.Keywords = []string{"python", "python scripting", "automation"}

	assert.Equal(t, 2*weightKeyword, RelevanceScore(skill, "python", testNow))
}

func TestRelevanceScore_TechnologyWeight(t *testing.T) {
	skill := bareSkill("Something Else")
	skill.Technologies = []models.Technology{
		{Name: "CPython", Category: "language"},
		{Name: "Docker", Category: "tool"},
	}

	assert.Equal(t, weightTechnology, RelevanceScore(skill, "python", testNow))
}

func TestRelevanceScore_AchievementWeight(t *testing.T) {
	skill := bareSkill("Something Else")
	skill.Achievements = []models.Achievement{
		{Description: "Rewrote the Python batch layer"},
		{Description: "Unrelated", Impact: "Cut python startup time"},
		{Description: "Unrelated", Impact: "Nothing here"},
	}

	assert.Equal(t, 2*weightAchievement, RelevanceScore(skill, "python", testNow))
}

func TestRelevanceScore_ExperienceWeight(t *testing.T) {
	skill := bareSkill("Something Else")
	skill.Experiences = []models.ExperienceLink{
		{Company: "Python Software Foundation", Highlight: "volunteer"},
		{Company: "Acme", Highlight: "Maintained Python tooling"},
		{Company: "Acme", Highlight: "Nothing relevant"},
	}

	assert.Equal(t, 2*weightExperience, RelevanceScore(skill, "python", testNow))
}

func TestRelevanceScore_ProficiencyBonus(t *testing.T) {
	tests := []struct {
		proficiency models.Proficiency
		bonus       int
	}{
		{models.ProficiencyExpert, 5},
		{models.ProficiencyAdvanced, 3},
		{models.ProficiencyIntermediate, 1},
		{models.ProficiencyFamiliar, 0},
		{models.Proficiency("wizard"), 0}, // unknown tier must not crash
	}

	for _, tt := range tests {
		t.Run(string(tt.proficiency), func(t *testing.T) {
			skill := bareSkill("Python")
			skill.Proficiency = tt.proficiency
			assert.Equal(t, weightNameExact+tt.bonus, RelevanceScore(skill, "python", testNow))
		})
	}
}

func TestRelevanceScore_RecencyBonus(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastUsed string
		bonus    int
	}{
		{"under 6 months", "2025-05-01", 3},
		{"under 12 months", "2024-11-01", 2},
		{"under 24 months", "2024-01-01", 1},
		{"older", "2020-01-01", 0},
		{"unparseable", "recently", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skill := bareSkill("Python")
			skill.LastUsed = tt.lastUsed
			assert.Equal(t, weightNameExact+tt.bonus, RelevanceScore(skill, "python", now))
		})
	}
}

func TestRelevanceScore_CaseInsensitive(t *testing.T) {
	skill := bareSkill("PYTHON")
	assert.Equal(t, weightNameExact, RelevanceScore(skill, "Python", testNow))
}
