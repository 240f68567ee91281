package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"commerce-dashboard/internal/config"
	"commerce-dashboard/internal/dataset"
	"commerce-dashboard/internal/middleware"
	"commerce-dashboard/internal/observability"
	"commerce-dashboard/internal/server"
	"commerce-dashboard/internal/services"
	"commerce-dashboard/internal/ui/templates"
)

const (
	renderTimeout = 10 * time.Second
	cacheMaxAge   = "public, max-age=300"
)

// dashboardPage renders the page shell with the filter options of d.
func dashboardPage(d *services.Dashboard) http.HandlerFunc {
	opts := d.Options()
	page := templates.PageData{
		Divisions:      opts.Divisions,
		PaymentMethods: opts.PaymentMethods,
		MinDate:        opts.MinDate,
		MaxDate:        opts.MaxDate,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", cacheMaxAge)
		if err := templates.Dashboard(page).Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func sources(cfg config.DataConfig) dataset.Sources {
	return dataset.Sources{
		Fact:        cfg.Path(cfg.FactFile),
		Customer:    cfg.Path(cfg.CustomerFile),
		Item:        cfg.Path(cfg.ItemFile),
		Store:       cfg.Path(cfg.StoreFile),
		Time:        cfg.Path(cfg.TimeFile),
		Transaction: cfg.Path(cfg.TransactionFile),
	}
}

// logLoadFailure reports which file or column stopped the startup.
func logLoadFailure(logger *slog.Logger, err error) {
	var loadErr *dataset.LoadError
	var schemaErr *dataset.SchemaError
	switch {
	case stderrors.As(err, &loadErr):
		logger.Error("failed to load data file", "file", loadErr.File, "encoding", loadErr.Encoding, "error", loadErr.Err)
	case stderrors.As(err, &schemaErr):
		logger.Error("invalid data schema",
			"table", schemaErr.Table,
			"column", schemaErr.Column,
			"row", schemaErr.Row,
			"reason", schemaErr.Reason,
		)
	default:
		logger.Error("failed to prepare dataset", "error", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"data_dir", cfg.Data.Dir,
		"cache_dir", cfg.Data.CacheDir,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.LoadTimeout)
	dashboard, err := services.Load(ctx, sources(cfg.Data), dataset.NewSnapshot(cfg.Data.CacheDir), logger)
	cancel()
	if err != nil {
		logLoadFailure(logger, err)
		os.Exit(1)
	}

	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardPage(dashboard),
	}

	srv := server.NewServer(dashboard, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook("dashboard", func(ctx context.Context) error {
		logger.Info("shutting down dashboard service", "stats", dashboard.Stats())
		return nil
	})

	if err := gracefulServer.ListenAndServe(context.Background()); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
