package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mraso/portfolio/internal/assistant"
	"github.com/mraso/portfolio/internal/config"
	"github.com/mraso/portfolio/internal/llm"
)

var chatOwnerName string

var chatCmd = &cobra.Command{
	Use:   "chat <question>...",
	Short: "Ask the assistant one question from the terminal",
	Long: `Ask the assistant one question from the terminal.

Useful for checking what the chat endpoint would answer without running
the server. Requires ANTHROPIC_API_KEY or OPENAI_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatOwnerName, "owner", "", "portfolio owner name used in the assistant persona")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}

	skillRepo := loadSkillRepository(cfg)
	roleRepo, err := loadRoleRepository(cfg)
	if err != nil {
		return err
	}

	a := assistant.New(provider, skillRepo, roleRepo, assistant.Config{
		OwnerName: chatOwnerName,
		Model:     cfg.LLM.Model,
	})

	question := strings.Join(args, " ")
	reply, err := a.Answer(cmd.Context(), question, nil)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	fmt.Println(reply.Text)
	return nil
}
