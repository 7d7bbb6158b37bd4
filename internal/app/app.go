package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chandaslab/chandas-backend/internal/adapter/model/softmax"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/corpus"
	"github.com/chandaslab/chandas-backend/internal/chandas/meter"
	"github.com/chandaslab/chandas-backend/internal/config"
	"github.com/chandaslab/chandas-backend/internal/service/analysis"
	"github.com/chandaslab/chandas-backend/internal/transport/middleware"
	"github.com/chandaslab/chandas-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects the optional corpus database, loads the rulebook
// and fallback model, and serves the analysis API until the context is
// canceled or a termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The corpus database is optional. Without a DSN the server runs
	// rule-based analysis only and corpus lookups always miss.
	var pool *pgxpool.Pool
	if cfg.Database.DSN != "" {
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		logger.Info("corpus database connected")
	} else {
		logger.Info("no database DSN configured, corpus lookups disabled")
	}

	rulebook, err := meter.Load(cfg.Analysis.RulebookPath)
	if err != nil {
		return fmt.Errorf("load rulebook: %w", err)
	}
	logger.Info("rulebook loaded", slog.Int("rules", rulebook.Len()))

	// The fallback model is optional. Without one, verses the rulebook
	// cannot classify confidently stay unresolved.
	var classifier *softmax.Classifier
	if cfg.Analysis.ModelPath != "" {
		classifier, err = softmax.Load(cfg.Analysis.ModelPath)
		if err != nil {
			logger.Warn("fallback model unavailable",
				slog.String("path", cfg.Analysis.ModelPath),
				slog.String("error", err.Error()),
			)
			classifier = nil
		} else {
			logger.Info("fallback model loaded", slog.String("path", cfg.Analysis.ModelPath))
		}
	}

	svc := newAnalysisService(logger, rulebook, pool, classifier, cfg.Analysis)

	analyzeHandler := rest.NewAnalyzeHandler(svc, logger)
	healthHandler := newHealthHandler(pool)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/analyze", analyzeHandler.Analyze)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /livez", healthHandler.Live)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.Server.RateLimitPerMin > 0 {
		rl := middleware.NewRateLimiter(time.Minute)
		defer rl.Stop()
		mws = append(mws, rl.Limit(cfg.Server.RateLimitPerMin))
		logger.Info("rate limiting enabled", slog.Int("per_minute", cfg.Server.RateLimitPerMin))
	}
	handler := middleware.Chain(mws...)(mux)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newAnalysisService wires the optional corpus and model dependencies.
// A nil concrete pointer must not reach the service inside a non-nil
// interface value, so absent dependencies are passed as literal nils.
func newAnalysisService(
	logger *slog.Logger,
	rulebook *meter.Rulebook,
	pool *pgxpool.Pool,
	classifier *softmax.Classifier,
	cfg config.AnalysisConfig,
) *analysis.Service {
	switch {
	case pool == nil && classifier == nil:
		return analysis.NewService(logger, rulebook, nil, nil, cfg)
	case pool == nil:
		return analysis.NewService(logger, rulebook, nil, classifier, cfg)
	case classifier == nil:
		return analysis.NewService(logger, rulebook, corpus.New(pool), nil, cfg)
	default:
		return analysis.NewService(logger, rulebook, corpus.New(pool), classifier, cfg)
	}
}

func newHealthHandler(pool *pgxpool.Pool) *rest.HealthHandler {
	if pool == nil {
		return rest.NewHealthHandler(nil, Version)
	}
	return rest.NewHealthHandler(pool, Version)
}
