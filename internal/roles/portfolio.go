package roles

import (
	"fmt"
	"strings"
)

// PortfolioText renders the role catalog as the plain-text grounding
// context handed to the chat assistant alongside each question.
func (r *Repository) PortfolioText() string {
	var b strings.Builder

	b.WriteString("# Work Experience\n")
	for _, role := range r.data.Roles {
		end := "Present"
		if role.Timeframe.End != nil {
			end = *role.Timeframe.End
		}

		fmt.Fprintf(&b, "\n## %s — %s (%s to %s, %s)\n", role.Title, role.Company, role.Timeframe.Start, end, role.Location)
		if role.Summary != "" {
			b.WriteString(role.Summary)
			b.WriteString("\n")
		}
		if len(role.CoreTech) > 0 {
			fmt.Fprintf(&b, "Core technologies: %s\n", strings.Join(role.CoreTech, ", "))
		}
		for _, h := range role.Highlights {
			fmt.Fprintf(&b, "- %s\n", h.Description)
		}
	}

	return b.String()
}
