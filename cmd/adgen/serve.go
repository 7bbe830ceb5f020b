package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/flipdirmatze/ad-video-generator/config"
	_ "github.com/flipdirmatze/ad-video-generator/docs"
	"github.com/flipdirmatze/ad-video-generator/handlers"
	"github.com/flipdirmatze/ad-video-generator/internal/matching"
	"github.com/flipdirmatze/ad-video-generator/internal/ratelimit"
	"github.com/flipdirmatze/ad-video-generator/internal/worker"
	"github.com/flipdirmatze/ad-video-generator/middleware"
	"github.com/flipdirmatze/ad-video-generator/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := config.InitLogger(cfg.Log.Level)

	runCtx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(cfg.Storage, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to open store")
		return err
	}
	defer closeStore()

	ai, err := newAIBackend(runCtx, cfg.AI, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize AI backend")
		return err
	}
	defer ai.Close()
	logger.WithField("backend", cfg.AI.Backend).Info("AI backend initialized")

	orch := matching.New(ai.deps(logger), matching.Options{
		AnalysisTimeout: cfg.AI.AnalysisTimeout,
		MatchTimeout:    cfg.AI.MatchTimeout,
	})

	dispatcher := worker.NewDispatcher(cfg.Worker.Workers, cfg.Worker.QueueSize, logger)
	dispatcher.Run(context.Background())
	defer dispatcher.Stop()

	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.CleanupInterval, logger)
	if err := limiter.Start(); err != nil {
		return err
	}
	defer limiter.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return utils.RespondWithError(c, code, err.Error())
		},
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.UserIDHeader,
	}))
	app.Use(middleware.RequestLogger(logger))

	h := handlers.NewApplicationHandler(orch, st, dispatcher, logger)
	if ai.health != nil {
		h.AI = ai.health
	}
	handlers.RegisterRoutes(app, h, limiter)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		logger.Infof("Starting API on %s", cfg.Addr())
		return app.Listen(cfg.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down API...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.WithError(err).Warn("Server shutdown did not complete cleanly")
		}
		return nil
	})
	return g.Wait()
}
