package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mraso/portfolio/internal/config"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect the work-experience catalog",
}

var rolesGroupByCompany bool

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles in catalog order",
	RunE:  runRolesList,
}

var rolesShowCmd = &cobra.Command{
	Use:   "show <role-id>",
	Short: "Show one role in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runRolesShow,
}

func init() {
	rolesListCmd.Flags().BoolVar(&rolesGroupByCompany, "by-company", false, "group roles by employer")

	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesShowCmd)
}

func runRolesList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo, err := loadRoleRepository(cfg)
	if err != nil {
		return err
	}

	if rolesGroupByCompany {
		for _, group := range repo.RolesByCompany() {
			fmt.Printf("%s\n", group.Company)
			fmt.Println(strings.Repeat("─", 50))
			for _, role := range group.Roles {
				fmt.Printf("  %-30s %s to %s\n", role.Title, role.Timeframe.Start, role.Timeframe.EndKey())
			}
			fmt.Println()
		}
		return nil
	}

	meta := repo.DatasetMetadata()
	fmt.Printf("ROLES (%d, schema %s)\n", meta.TotalRoles, meta.SchemaVersion)
	fmt.Println(strings.Repeat("─", 50))
	for _, role := range repo.Roles() {
		end := "present"
		if role.Timeframe.End != nil {
			end = *role.Timeframe.End
		}
		fmt.Printf("  %-26s %s — %s (%s to %s)\n", role.RoleID, role.Title, role.Company, role.Timeframe.Start, end)
	}
	return nil
}

func runRolesShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo, err := loadRoleRepository(cfg)
	if err != nil {
		return err
	}

	role, err := repo.RoleByID(args[0])
	if err != nil {
		return err
	}

	end := "present"
	if role.Timeframe.End != nil {
		end = *role.Timeframe.End
	}
	fmt.Printf("%s — %s\n", role.Title, role.Company)
	fmt.Printf("%s, %s to %s\n\n", role.Location, role.Timeframe.Start, end)
	fmt.Println(role.Summary)
	if len(role.CoreTech) > 0 {
		fmt.Printf("\nCore technologies: %s\n", strings.Join(role.CoreTech, ", "))
	}
	if len(role.Highlights) > 0 {
		fmt.Println("\nHighlights:")
		for _, h := range role.Highlights {
			fmt.Printf("  - %s\n", h.Description)
		}
	}
	return nil
}
