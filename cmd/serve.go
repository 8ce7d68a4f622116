package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/clio/internal/auth"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the questionnaire, chat, SEO and account API over HTTP",
	Long: `Start an HTTP server exposing the same operations as the CLI.

Routes:
  GET  /healthz
  GET  /api/questions, /api/archetypes, /api/archetypes/:key, /api/rules, /api/prompt
  POST /api/analyze, /api/chat, /api/seo
  POST /api/register, /api/login, /api/logout   GET /api/me

Chat and SEO routes are disabled when the text-generation provider cannot be set up.
SEO, logout and me require a session; sessions expire after 24h without use.
Login returns a bearer token for the Authorization header.

Examples:
  clio serve --addr :8080
  clio serve --allow-origins https://app.example.com --store-backend postgresql --store-db-connect "host=db dbname=clio"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := datastore.Manager.GetStore()
		deps := server.Deps{
			Rulebook:     rulebook,
			Store:        store,
			Auth:         auth.NewService(store),
			Sessions:     auth.NewSessionManager(),
			Logger:       logger,
			AllowOrigins: cfg.AllowOrigins,
		}

		if chatter, err := newChatter(rootCtx); err != nil {
			logger.Warn("chat and narration disabled", zap.Error(err))
		} else {
			deps.Chatter = chatter
		}
		if seo, err := newSEOAnalyzer(rootCtx); err != nil {
			logger.Warn("SEO analysis disabled", zap.Error(err))
		} else {
			deps.SEO = seo
		}

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting HTTP server", zap.String("addr", cfg.Addr), zap.String("store", string(cfg.StoreBackend)))
		if err := server.New(deps).Run(ctx, cfg.Addr); err != nil {
			contract.LogFatal("HTTP server failed", err)
		}
	},
}
