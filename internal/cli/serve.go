package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mraso/portfolio/internal/assistant"
	"github.com/mraso/portfolio/internal/config"
	"github.com/mraso/portfolio/internal/db"
	"github.com/mraso/portfolio/internal/embedding"
	"github.com/mraso/portfolio/internal/llm"
	"github.com/mraso/portfolio/internal/log"
	"github.com/mraso/portfolio/internal/server"
	"github.com/mraso/portfolio/internal/telemetry"
)

var serveOwnerName string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio HTTP server",
	Long: `Run the portfolio HTTP server.

Serves the skill and role APIs plus the chat assistant. The assistant
and semantic role search switch on automatically when API keys are
configured; without keys the data endpoints still work.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveOwnerName, "owner", "", "portfolio owner name used in the assistant persona")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := log.Init(config.LogDir(cfg)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = log.Close() }()

	skillRepo := loadSkillRepository(cfg)
	roleRepo, err := loadRoleRepository(cfg)
	if err != nil {
		return err
	}

	paths := config.GetPaths(cfg)
	store, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	telemetryClient := telemetry.New()
	defer telemetryClient.Close()

	opts := server.Options{
		Config:    cfg,
		Skills:    skillRepo,
		Roles:     roleRepo,
		Store:     store,
		Telemetry: telemetryClient,
	}

	providerName := "none"
	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		log.Printf("chat assistant disabled: %v\n", err)
	} else {
		providerName = provider.Name()
		opts.Assistant = assistant.New(provider, skillRepo, roleRepo, assistant.Config{
			OwnerName: serveOwnerName,
			Model:     cfg.LLM.Model,
		})
	}

	if cfg.Embedding.Enabled {
		opts.Embedder = embedding.NewOpenAI(cfg.Embedding.APIKey, cfg.Embedding.Model)
	} else {
		log.Printf("semantic role search disabled: no embedding API key\n")
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	telemetryClient.TrackServerStarted(providerName, cfg.Embedding.Enabled)
	return srv.Run(cmd.Context())
}
