// Package server exposes the portfolio backend over HTTP.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mraso/portfolio/internal/assistant"
	"github.com/mraso/portfolio/internal/config"
	"github.com/mraso/portfolio/internal/db"
	"github.com/mraso/portfolio/internal/embedding"
	"github.com/mraso/portfolio/internal/log"
	"github.com/mraso/portfolio/internal/roles"
	"github.com/mraso/portfolio/internal/skills"
	"github.com/mraso/portfolio/internal/telemetry"
)

// Server wires the repositories, assistant and storage behind a gin
// router.
type Server struct {
	cfg       *config.Config
	router    *gin.Engine
	skills    *skills.Repository
	roles     *roles.Repository
	assistant *assistant.Assistant
	embedder  embedding.Provider
	store     *db.DB
	telemetry telemetry.Client
	limiters  *ipLimiters
	ipSalt    string
}

// Options collects the server's collaborators. Assistant, embedder,
// store and telemetry are optional; the matching endpoints degrade when
// they are absent.
type Options struct {
	Config    *config.Config
	Skills    *skills.Repository
	Roles     *roles.Repository
	Assistant *assistant.Assistant
	Embedder  embedding.Provider
	Store     *db.DB
	Telemetry telemetry.Client
}

// New builds a server and registers its routes.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Skills == nil || opts.Roles == nil {
		return nil, errors.New("skill and role repositories are required")
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.New()
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate ip salt: %w", err)
	}

	s := &Server{
		cfg:       opts.Config,
		skills:    opts.Skills,
		roles:     opts.Roles,
		assistant: opts.Assistant,
		embedder:  opts.Embedder,
		store:     opts.Store,
		telemetry: opts.Telemetry,
		limiters:  newIPLimiters(opts.Config.Server.ChatRateLimit),
		ipSalt:    hex.EncodeToString(salt),
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter registers all routes and middleware.
func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.visitorTracking())

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/skills", s.handleListSkills)
		api.GET("/skills/search", s.handleSearchSkills)
		api.GET("/skills/stats", s.handleSkillStats)
		api.GET("/skills/:id", s.handleGetSkill)

		api.GET("/roles", s.handleListRoles)
		api.GET("/roles/search", s.handleSearchRoles)
		api.GET("/roles/:id", s.handleGetRole)

		api.POST("/chat", s.chatRateLimit(), s.handleChat)

		api.GET("/stats/visitors", s.handleVisitorStats)
	}

	return router
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
