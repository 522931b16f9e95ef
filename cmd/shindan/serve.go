package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	shindan "github.com/wrenchworks-ai/shindan"
	"github.com/wrenchworks-ai/shindan/api"
	"github.com/wrenchworks-ai/shindan/internal/config"
	"github.com/wrenchworks-ai/shindan/internal/mcp"
	"github.com/wrenchworks-ai/shindan/internal/ratelimit"
	"github.com/wrenchworks-ai/shindan/internal/server"
	"github.com/wrenchworks-ai/shindan/internal/storage"
	"github.com/wrenchworks-ai/shindan/internal/telemetry"
	"github.com/wrenchworks-ai/shindan/migrations"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the diagnostics HTTP/MCP server",
	Long: `Start the Shindan server: the diagnostics REST API under /v1, the MCP
endpoint at /mcp, and health at /health. Configuration comes from SHINDAN_*
environment variables (a .env file is loaded if present).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("shindan starting", "version", version, "port", cfg.Port)

	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	db, err := storage.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.RunMigrations(ctx, migrations.FS); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	opts := []shindan.Option{
		shindan.WithLogger(logger),
		shindan.WithConfidenceThreshold(cfg.ConfidenceThreshold),
	}
	if cfg.KnowledgeOverlayPath != "" {
		opts = append(opts, shindan.WithKnowledgeOverlay(cfg.KnowledgeOverlayPath))
	}
	if cfg.ClassifierModelPath != "" {
		opts = append(opts, shindan.WithClassifierModel(cfg.ClassifierModelPath))
	}
	engine, err := shindan.New(opts...)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimitEnabled {
		memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		defer func() { _ = memLimiter.Close() }()
		limiter = memLimiter
		logger.Info("rate limiting: memory (in-process token bucket)",
			"rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	} else {
		limiter = ratelimit.NoopLimiter{}
		logger.Info("rate limiting: disabled")
	}

	mcpSrv := mcp.New(engine, logger, version)

	srv := server.New(server.Config{
		Engine:              engine,
		Logger:              logger,
		DB:                  db,
		Limiter:             limiter,
		MCPServer:           mcpSrv.MCPServer(),
		OpenAPISpec:         api.OpenAPISpec,
		Port:                cfg.Port,
		ReadTimeout:         cfg.ReadTimeout,
		WriteTimeout:        cfg.WriteTimeout,
		Version:             version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Concluded sessions past the retention window are purged hourly.
	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				srv.Handlers().PurgeExpiredSessions(gctx, time.Now().Add(-cfg.SessionRetention))
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shindan shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shindan stopped")
	return nil
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
