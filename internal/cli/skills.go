package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mraso/portfolio/internal/config"
	"github.com/mraso/portfolio/internal/models"
	"github.com/mraso/portfolio/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect the skill inventory",
}

var skillsCategoryFilter string

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills grouped by category",
	RunE:  runSkillsList,
}

var skillsSearchLimit int

var skillsSearchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Rank skills against one or more queries",
	Long: `Rank skills against one or more queries.

Multiple query arguments are scored independently and their relevance
scores summed, so skills matching several queries rise to the top.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSkillsSearch,
}

var skillsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics for the inventory",
	RunE:  runSkillsStats,
}

func init() {
	skillsListCmd.Flags().StringVar(&skillsCategoryFilter, "category", "", "only show one category")
	skillsSearchCmd.Flags().IntVar(&skillsSearchLimit, "limit", 0, "maximum results (default 5, 10 for multi-query)")

	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsSearchCmd)
	skillsCmd.AddCommand(skillsStatsCmd)
}

func runSkillsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo := loadSkillRepository(cfg)

	ctx := cmd.Context()
	categories, err := repo.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}

	for _, cat := range categories {
		if skillsCategoryFilter != "" && cat.ID != skillsCategoryFilter {
			continue
		}
		fmt.Printf("%s (%d skills)\n", cat.Name, len(cat.Skills))
		fmt.Println(strings.Repeat("─", 50))
		for _, skill := range cat.Skills {
			fmt.Printf("  %-30s %s, %g years\n", skill.Name, skill.Proficiency, skill.YearsExperience)
		}
		fmt.Println()
	}
	return nil
}

func runSkillsSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo := loadSkillRepository(cfg)

	ctx := cmd.Context()
	var results []skills.SearchResult
	if len(args) > 1 {
		results, err = repo.SearchMultiQuery(ctx, args, skillsSearchLimit)
	} else {
		results, err = repo.SearchSemantic(ctx, args[0], skillsSearchLimit)
	}
	if err != nil {
		return fmt.Errorf("search skills: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching skills.")
		return nil
	}

	for _, result := range results {
		fmt.Printf("  %-30s score %-5d %s\n", result.Skill.Name, result.RelevanceScore, result.MatchingContext)
	}
	return nil
}

func runSkillsStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo := loadSkillRepository(cfg)

	stats, err := repo.Statistics(cmd.Context())
	if err != nil {
		return fmt.Errorf("compute stats: %w", err)
	}

	fmt.Printf("Skills:       %d\n", stats.TotalSkills)
	fmt.Printf("Categories:   %d\n", stats.TotalCategories)
	fmt.Printf("Technologies: %d\n", stats.TotalTechnologies)
	fmt.Printf("Avg years:    %.1f\n", stats.AverageYearsExperience)

	proficiencies := make([]string, 0, len(stats.ByProficiency))
	for p := range stats.ByProficiency {
		proficiencies = append(proficiencies, string(p))
	}
	sort.Strings(proficiencies)
	for _, p := range proficiencies {
		fmt.Printf("  %-14s %d\n", p, stats.ByProficiency[models.Proficiency(p)])
	}

	if len(stats.MostCommonTechnologies) > 0 {
		fmt.Println("\nTop technologies:")
		for _, tech := range stats.MostCommonTechnologies {
			fmt.Printf("  %-20s %d\n", tech.Name, tech.Count)
		}
	}
	return nil
}
