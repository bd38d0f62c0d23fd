package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voter-registry/core/cache"
	"voter-registry/core/config"
	"voter-registry/core/database"
	"voter-registry/core/loader"
	"voter-registry/core/logger"
	"voter-registry/core/middleware/auth"
	"voter-registry/core/middleware/rayid"
	"voter-registry/core/storage"

	"voter-registry/feature/dashboard"
	"voter-registry/feature/registry"
	"voter-registry/feature/registry/models"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the registry server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := models.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}
		logg.Info("Connected to registry database", zap.String("name", cfg.Database.Name))

		// 4. Snapshot Cache (Optional)
		snapshots, err := cache.New(cfg.Cache)
		if err != nil {
			logg.Warn("Optional snapshot cache unavailable", zap.Error(err))
		} else if snapshots != nil {
			logg.Info("Snapshot cache connected")
		}

		// 5. Roll Archive Storage (Optional)
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional roll archive unavailable", zap.Error(err))
		} else {
			store = client
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			BodyLimit:             32 * 1024 * 1024,
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		mgr.Register(registry.NewFeature(db, snapshots, store, cfg.Storage.Bucket, logg, cacheTTL))
		mgr.Register(dashboard.NewFeature(db, logg))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging middleware (Zap + RayID)
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

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
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
