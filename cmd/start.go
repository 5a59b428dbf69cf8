package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"embed-sync/core/config"
	"embed-sync/core/loader"
	"embed-sync/core/logger"
	"embed-sync/core/middleware/auth"
	"embed-sync/core/middleware/rayid"
	"embed-sync/core/reconcile"

	"embed-sync/feature/embeds"
	syncfeature "embed-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "embed-sync/docs/swagger"
)

// @title Embed Sync API
// @version 1.0
// @description API for syncing Discord channel embeds from local definitions.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the embed sync server",
	Long:  `Starts the HTTP server exposing sync runs, run history and embed previews.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
		scope, _ := reconcile.ParsePurgeScope(cfg.Sync.PurgeScope)

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Build the reconciler with its optional archive and journal
		comp, err := newComponents(context.Background(), cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize sync", zap.Error(err))
		}
		defer comp.Close()

		var runs syncfeature.RunLister
		if comp.journal != nil {
			runs = comp.journal
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(syncfeature.NewFeature(syncfeature.NewService(comp.reconciler, runs, scope, logg)))
		mgr.Register(embeds.NewFeature(afero.NewOsFs(), cfg.Sync.Root, logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, the API is unprotected")
		}

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
