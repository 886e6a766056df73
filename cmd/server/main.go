// Command server runs the crewgate gateway: an OpenAI-compatible HTTP
// front for an external RAG pipeline.
//
// Configuration is layered (.env, config.yaml, CREWGATE_* environment
// variables); see pkg/config. The most common variables:
//
//	CREWGATE_BACKEND_URL  - crew service URL (required for pipeline type "crew")
//	CREWGATE_PORT         - listen port (default: 8000)
//	CREWGATE_MODEL        - advertised model ID (default: "app-rag-model")
//	CREWGATE_PIPELINE     - pipeline type: "crew" or "static" (default: "crew")
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crewgate/crewgate/pkg/config"
	"github.com/crewgate/crewgate/pkg/engine"
	"github.com/crewgate/crewgate/pkg/observability"
	"github.com/crewgate/crewgate/pkg/pipeline"
	"github.com/crewgate/crewgate/pkg/pipeline/crew"
	"github.com/crewgate/crewgate/pkg/pipeline/static"
	"github.com/crewgate/crewgate/pkg/telemetry"
	"github.com/crewgate/crewgate/pkg/transport"
	transporthttp "github.com/crewgate/crewgate/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing is best effort: a missing collector must not keep the
	// gateway from serving.
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		TraceFile:   cfg.Telemetry.TraceFile,
	})
	if err != nil {
		logger.Warn("tracing unavailable", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	} else if cfg.Telemetry.Enabled {
		logger.Info("tracing enabled",
			"endpoint", cfg.Telemetry.Endpoint,
			"trace_file", cfg.Telemetry.TraceFile,
		)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracing shutdown failed", "error", err)
		}
	}()

	// Create the pipeline runner.
	runner, err := newRunner(cfg)
	if err != nil {
		return fmt.Errorf("creating pipeline runner: %w", err)
	}
	defer runner.Close()

	// Create the engine.
	eng, err := engine.New(runner, engine.Config{
		ModelID:       cfg.Model.ID,
		ContextLength: cfg.Model.ContextLength,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	// Create the HTTP adapter with the default middleware stack.
	adapter := transporthttp.NewAdapter(eng, eng.ModelList(),
		transporthttp.Config{
			MaxBodySize:  10 << 20,
			AllowOrigin:  cfg.Server.AllowOrigin,
			StrictErrors: cfg.Server.StrictErrors,
		},
		transport.Recovery(),
		transport.RequestID(),
		transport.Logging(logger),
	)

	// Build the HTTP mux with health and metrics endpoints.
	mux := http.NewServeMux()
	mux.Handle("/", adapter.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	if cfg.Observability.Metrics.Enabled {
		mux.Handle("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      observability.MetricsMiddleware(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in background.
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"port", cfg.Server.Port,
			"pipeline", runner.Name(),
			"backend", cfg.Pipeline.BackendURL,
			"model", cfg.Model.ID,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error.
	select {
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// newRunner builds the pipeline runner selected by the configuration.
func newRunner(cfg *config.Config) (pipeline.Runner, error) {
	switch cfg.Pipeline.Type {
	case "static":
		return static.New(cfg.Pipeline.StaticReply), nil
	default:
		return crew.New(crew.Config{
			BaseURL: cfg.Pipeline.BackendURL,
			APIKey:  cfg.Pipeline.APIKey,
			Timeout: cfg.Pipeline.Timeout,
		})
	}
}

// logLevel parses a config level string; unknown values fall back to info.
func logLevel(level string) slog.Level {
	switch level {
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
