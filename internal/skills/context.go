package skills

import (
	"fmt"
	"strings"
)

// skillQueryTriggers are phrases that mark a visitor question as being
// about skills, so the assistant knows to attach skill context.
var skillQueryTriggers = []string{
	"experience with",
	"know about",
	"expertise in",
	"skills in",
	"proficiency",
	"technologies",
	"tools",
	"frameworks",
	"languages",
	"familiar with",
	"worked with",
	"used",
	"knowledge of",
	"capabilities",
	"competencies",
}

// commonSkillTerms is the fixed vocabulary recognized by
// ExtractSkillNames.
var commonSkillTerms = []string{
	"python", "sql", "sas", "javascript", "typescript", "react", "node",
	"aws", "azure", "gcp", "docker", "kubernetes",
	"snowflake", "dbt", "airflow", "pandas", "numpy",
	"machine learning", "ml", "ai", "llm", "rag",
	"tableau", "power bi", "looker",
	"terraform", "ci/cd", "git",
}

// IsSkillQuery reports whether the text contains any skill trigger phrase.
func IsSkillQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range skillQueryTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

// ExtractSkillNames returns the known technology terms that appear as
// substrings of the query.
func ExtractSkillNames(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range commonSkillTerms {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// BuildSkillContext renders search results as a markdown block for the
// text-generation call. Returns "" for empty input.
func BuildSkillContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, result := range results {
		skill := result.Skill

		techs := make([]string, 0, len(skill.Technologies))
		for _, tech := range skill.Technologies {
			techs = append(techs, tech.Name)
		}

		var companies []string
		seen := map[string]bool{}
		for _, exp := range skill.Experiences {
			if !seen[exp.Company] {
				seen[exp.Company] = true
				companies = append(companies, exp.Company)
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "**%s** (%s, %g years)\n", skill.Name, skill.Proficiency, skill.YearsExperience)
		fmt.Fprintf(&b, "- Category: %s\n", result.Category.Name)
		fmt.Fprintf(&b, "- Technologies: %s\n", strings.Join(techs, ", "))
		fmt.Fprintf(&b, "- Used at: %s\n", strings.Join(companies, ", "))

		if len(skill.Achievements) > 0 {
			top := skill.Achievements[0]
			fmt.Fprintf(&b, "- Key Achievement: %s", top.Description)
			if top.Impact != "" {
				fmt.Fprintf(&b, "\n- Impact: %s", top.Impact)
			}
		} else {
			b.WriteString("- Key Achievement: N/A")
		}

		parts = append(parts, b.String())
	}

	return "## Skills & Expertise Context\n\n" + strings.Join(parts, "\n\n")
}
