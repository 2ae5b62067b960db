package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"roadmap/internal/config"
	"roadmap/internal/handler"
	"roadmap/internal/hub"
	"roadmap/internal/middleware"
	"roadmap/internal/ui"
	"roadmap/pkg/roadmapapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting roadmap server",
		"log_level", cfg.LogLevel.String(),
		"http_addr", cfg.HTTPAddr,
		"backend_url", cfg.BackendURL,
		"default_locale", cfg.DefaultLocale,
	)

	backend := roadmapapi.New(cfg.BackendURL, cfg.BackendTimeout)
	sessions := hub.NewHub(logger)
	httpLimiter := middleware.NewRateLimiter(cfg.RateLimitPerWindow, cfg.RateLimitWindow, cfg.RateLimitWhitelist, logger)
	eventLimiter := middleware.NewRateLimiter(cfg.EventLimitPerWindow, cfg.RateLimitWindow, nil, logger)

	pageOpts := ui.Options{
		Autocomplete: ui.AutocompleteOptions{
			MinimumInputLength: cfg.AutocompleteMinLength,
			Delay:              cfg.AutocompleteDelay,
			Cache:              cfg.AutocompleteCache,
		},
		Map: ui.MapOptions{
			EmbedURL:  cfg.MapEmbedURL,
			Margin:    cfg.MapMargin,
			RoutePath: "/map",
		},
	}

	pageHandler := handler.NewPageHandler(cfg.DefaultLocale, logger)
	mapHandler := handler.NewMapHandler(logger)
	wsHandler := handler.NewWSHandler(sessions, backend, pageOpts, cfg.DefaultLocale, eventLimiter, logger)
	healthHandler := handler.NewHealthHandler(sessions)

	pages := http.NewServeMux()
	pages.HandleFunc("GET /{$}", pageHandler.Index)
	pages.HandleFunc("GET /map", mapHandler.ServeMap)
	pages.HandleFunc("GET /static/", pageHandler.Static)

	mux := http.NewServeMux()
	mux.Handle("/", handler.GzipMiddleware(handler.LoggingMiddleware(logger)(httpLimiter.Middleware(pages))))
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sessions.Run(ctx)
	go httpLimiter.Run(ctx)
	go eventLimiter.Run(ctx)

	go func() {
		logger.Info("starting HTTP server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
