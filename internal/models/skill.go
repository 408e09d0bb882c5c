// Package models defines the core data structures for the portfolio backend.
package models

// SkillInventory is the top-level skills catalog document.
type SkillInventory struct {
	Version     string          `json:"version"`
	GeneratedAt string          `json:"generated_at"`
	Categories  []SkillCategory `json:"categories"`
}

// SkillCategory groups related skills for display.
// Categories partition the catalog: a skill belongs to exactly one category.
type SkillCategory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Order       int     `json:"order"`
	Skills      []Skill `json:"skills"`
}

// Skill represents one entry in the skills inventory.
type Skill struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Proficiency     Proficiency      `json:"proficiency"`
	Technologies    []Technology     `json:"technologies"`
	Experiences     []ExperienceLink `json:"experiences"`
	Achievements    []Achievement    `json:"achievements"`
	Keywords        []string         `json:"keywords"`
	LastUsed        string           `json:"last_used"` // ISO date (YYYY-MM-DD)
	YearsExperience float64          `json:"years_experience"`
}

// Proficiency is an ordinal skill-mastery tier.
type Proficiency string

// Proficiency tiers, highest first.
const (
	ProficiencyExpert       Proficiency = "expert"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyFamiliar     Proficiency = "familiar"
)

// Rank returns the sort position of a proficiency tier (expert first).
// Unrecognized tiers rank below familiar rather than failing.
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyExpert:
		return 0
	case ProficiencyAdvanced:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyFamiliar:
		return 3
	default:
		return 4
	}
}

// IsValid reports whether p is one of the four known tiers.
func (p Proficiency) IsValid() bool {
	return p.Rank() < 4
}

// Technology is a named tool, library, platform or language attached to a skill.
type Technology struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Context  string `json:"context,omitempty"`
}

// ExperienceLink records where a skill was used. It is a weak back reference
// to a role in the work-experience catalog; the skill does not own the role.
type ExperienceLink struct {
	RoleID    string    `json:"role_id"`
	Company   string    `json:"company"`
	Highlight string    `json:"highlight"`
	Timeframe Timeframe `json:"timeframe"`
}

// Timeframe is a start/end month range. A nil End means current/ongoing,
// which sorts as more recent than any concrete end date.
type Timeframe struct {
	Start string  `json:"start"` // "YYYY-MM"
	End   *string `json:"end"`   // "YYYY-MM" or null
}

// IsCurrent reports whether the timeframe is ongoing.
func (t Timeframe) IsCurrent() bool {
	return t.End == nil
}

// EndKey returns a sortable end value where ongoing timeframes compare
// after any concrete month. "YYYY-MM" strings compare lexically in
// chronological order, so "~" (above all digits) stands in for "still open".
func (t Timeframe) EndKey() string {
	if t.End == nil {
		return "~"
	}
	return *t.End
}

// Achievement is a concrete accomplishment tied to a skill.
type Achievement struct {
	Description string   `json:"description"`
	Impact      string   `json:"impact,omitempty"`
	Metrics     []Metric `json:"metrics,omitempty"`
}

// Metric quantifies an achievement. Value is a display string ("400%", "$2M+").
type Metric struct {
	Type    MetricType `json:"type"`
	Value   string     `json:"value"`
	Context string     `json:"context"`
}

// MetricType classifies what a metric measures.
type MetricType string

// Known metric types.
const (
	MetricPerformance  MetricType = "performance"
	MetricCost         MetricType = "cost"
	MetricTime         MetricType = "time"
	MetricScale        MetricType = "scale"
	MetricTestCoverage MetricType = "test_coverage"
)

// IsValid reports whether m is a known metric type.
func (m MetricType) IsValid() bool {
	switch m {
	case MetricPerformance, MetricCost, MetricTime, MetricScale, MetricTestCoverage:
		return true
	}
	return false
}
