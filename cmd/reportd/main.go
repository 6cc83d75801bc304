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

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/cropreport-go/internal/adapters/catalog"
	httpadapter "github.com/randomtoy/cropreport-go/internal/adapters/http"
	"github.com/randomtoy/cropreport-go/internal/adapters/llm/ollama"
	"github.com/randomtoy/cropreport-go/internal/app"
	"github.com/randomtoy/cropreport-go/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	var opts []ollama.Option
	if cfg.LLMFormat != "" {
		opts = append(opts, ollama.WithFormat(cfg.LLMFormat))
	}
	generator := ollama.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.OllamaBaseURL,
		cfg.LLMModel,
		logger,
		opts...,
	)

	reports := app.NewReportClient(generator, cfg.LLMModel, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))
	e.Use(httpadapter.CORSMiddleware(cfg.CORSAllowedOrigins))

	handler := httpadapter.NewHandler(reports, catalog.NewEmbeddedStore(), cfg.LLMTimeout, logger)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			"addr", cfg.HTTPAddr,
			"ollama", cfg.OllamaBaseURL,
			"model", cfg.LLMModel,
		)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
