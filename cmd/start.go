package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"item-matcher/core/config"
	"item-matcher/core/database"
	"item-matcher/core/loader"
	"item-matcher/core/logger"
	"item-matcher/core/middleware/ratelimit"
	"item-matcher/core/middleware/rayid"
	"item-matcher/feature/credential"
	"item-matcher/feature/pool"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the item matcher server",
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
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		if len(cfg.Server.MasterKeys()) == 0 {
			logg.Warn("No master API keys configured, admin endpoints will reject all requests")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features. The credential feature owns the API key store;
		// the pool feature borrows its Authorize lookup.
		creds := credential.NewFeature(db, logg, cfg.Server.MasterKeys())
		mgr.Register(creds)
		mgr.Register(pool.NewFeature(db, logg, creds.Service().Authorize))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		// Request logging with ray_id correlation.
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

		// Optional per-client rate limit.
		if cfg.Server.RateLimitPerSecond > 0 {
			app.Use(ratelimit.New(ratelimit.Config{
				PerSecond: cfg.Server.RateLimitPerSecond,
				Burst:     cfg.Server.RateLimitBurst,
			}))
		}

		// Service name at the root, useful as a liveness probe.
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendString("item-matcher")
		})

		// 6. Load Features (runs migrations and registers guarded routes)
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
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
