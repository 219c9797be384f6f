package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duelbot/core/loader"
	"duelbot/core/logger"
	"duelbot/core/mdm"
	"duelbot/core/middleware/auth"
	"duelbot/core/middleware/rayid"
	"duelbot/core/storage"

	"duelbot/feature/artwork"
	"duelbot/feature/catalog"
	"duelbot/feature/deck"
	"duelbot/feature/integrity"
	"duelbot/feature/meta"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "duelbot/docs/swagger"
)

// @title Duelbot API
// @version 1.0
// @description API for card lookups, stored deck lists and game meta.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the duelbot server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg, db, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer logg.Sync()

		client := mdm.NewClient(cfg.Source)

		// Object storage is optional; without it the artwork mirror stays
		// disabled and everything else runs as usual.
		var store storage.Client
		if cfg.Storage.Endpoint != "" {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		} else {
			logg.Info("No object storage configured, artwork mirror disabled")
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		mgr := loader.NewManager()

		// Register Features
		catalogFeature := catalog.NewFeature(db, client, logg, cfg.Source.FeedURL)
		deckFeature := deck.NewFeature(db, client, logg)
		artworkFeature := artwork.NewFeature(store, cfg.Storage.Bucket, catalogFeature.Service(), client, logg)

		mgr.Register(catalogFeature)
		mgr.Register(deckFeature)
		mgr.Register(meta.NewFeature(client, logg))
		mgr.Register(artworkFeature)
		mgr.Register(integrity.NewFeature(catalogFeature.Service(), deckFeature.Service(), artworkFeature.Service(), logg))

		if artworkFeature.IsEnabled() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if err := artworkFeature.Service().EnsureBucket(ctx); err != nil {
				logg.Warn("Artwork bucket unavailable", zap.Error(err))
			}
			cancel()
		}

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
