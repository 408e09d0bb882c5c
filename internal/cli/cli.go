// Package cli provides the command-line interface for the portfolio
// backend.
package cli

import (
	"context"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mraso/portfolio/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio website backend",
	Long: `Personal portfolio website backend

Serves the skill inventory, work-experience catalog and the grounded
chat assistant over HTTP, and offers quick terminal access to the same
data.

Telemetry:
  Telemetry is enabled by default, always anonymous, and never records
  visitor identity, questions, or IP addresses.

  Opt-out with:
  	PORTFOLIO_NO_TELEMETRY=1`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(chatCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}
