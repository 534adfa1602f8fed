package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookmark-manager/core/cache"
	"bookmark-manager/core/loader"
	"bookmark-manager/core/logger"
	"bookmark-manager/core/middleware/auth"
	"bookmark-manager/core/middleware/rayid"

	"bookmark-manager/feature/bookmarks"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bookmark-manager/docs/swagger"
)

// @title Bookmark Manager API
// @version 1.0
// @description Bookmark cache, import reconciliation and single-item edits.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bookmark manager server",
	Long:  `Starts the HTTP server, the cache change listener and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Configuration, logger and backends
		cfg, logg, c, err := setup(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Warm the snapshot (persisted copy first, store read otherwise)
		if cached, err := c.snapshots.Current(ctx); err != nil {
			logg.Warn("Initial snapshot failed", zap.Error(err))
		} else {
			logg.Info("Snapshot ready",
				zap.Int("bookmarks", cached.Snapshot.TotalBookmarks),
				zap.Int("folders", cached.Snapshot.TotalFolders),
				zap.Time("last_sync", cached.LastSync))
		}

		// 3. Change listener publishing to connected clients
		hub := bookmarks.NewHub()
		listener := cache.NewListener(c.store, c.snapshots, hub, logg)
		if err := listener.Start(); err != nil {
			logg.Fatal("Failed to start cache listener", zap.Error(err))
		}

		// 4. Fiber app
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Features
		mgr := loader.NewManager()
		mgr.Register(bookmarks.NewFeature(c.store, c.snapshots, c.reconciler, cfg.Import, hub, logg))

		// RayID first to trace everything
		app.Use(rayid.New())

		app.Use(func(fc *fiber.Ctx) error {
			l := logger.WithRayID(logg, fc)
			l.Info("Request started",
				zap.String("method", fc.Method()),
				zap.String("path", fc.Path()),
				zap.String("ip", fc.IP()),
			)
			err := fc.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Serve
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logg.Info("Shutting down server...")

		listener.Stop()
		hub.Close()
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
