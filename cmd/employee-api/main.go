// main is the entry point of the Employee API façade.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, YAML file, environment overrides)
//  2. Initialise the logger
//  3. Build the upstream employee-service client
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/employee-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/employee-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/employee-api/internal/config"
	"github.com/aanand-mishra/employee-api/internal/employee"
	handlers "github.com/aanand-mishra/employee-api/internal/http/handlers/employee"
	"github.com/aanand-mishra/employee-api/internal/upstream/rest"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting employee-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	client := rest.New(cfg.Upstream)
	log.Info("upstream configured",
		slog.String("base_url", cfg.Upstream.BaseURL),
		slog.Duration("timeout", cfg.Upstream.Timeout))

	svc := employee.NewService(client)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handlers.NewRouter(svc),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment:
// text at DEBUG for dev, JSON at DEBUG for staging, JSON at INFO for prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
