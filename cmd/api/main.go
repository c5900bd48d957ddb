package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreview/db/migrations"
	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/catalog"
	"bookreview/internal/config"
	"bookreview/internal/httpx"
	"bookreview/internal/platform/database"
	"bookreview/internal/platform/logger"
	"bookreview/internal/review"
	"bookreview/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Open(ctx, database.Config{DSN: cfg.DatabaseDSN, MaxConns: cfg.DBMaxConns}, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.MigrateUp(ctx, pool, migrations.FS, ".", log); err != nil {
			return err
		}
	}

	bookRepo := book.NewPostgresRepo(pool, cfg.DBQueryTimeout)
	reviewRepo := review.NewPostgresRepo(pool, cfg.DBQueryTimeout)
	userRepo := user.NewPostgresRepo(pool, cfg.DBQueryTimeout)

	userService := user.NewService(userRepo)
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTTTL, userService)
	details := catalog.NewDetailAssembler(catalog.NewPostgresSnapshotter(pool, cfg.DBQueryTimeout))
	catalogService := catalog.NewService(bookRepo, reviewRepo, details, log)

	handler := newRouter(routerDeps{
		cfg:       cfg,
		log:       log,
		db:        pool,
		rateLimit: httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		catalog:   catalog.NewHTTPHandler(catalogService, log),
		auth:      auth.NewHTTPHandler(authService, log),
		users:     user.NewHTTPHandler(userService),
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
