package main

import (
	"context"
	"net/http"
	"time"

	"bookreview/internal/auth"
	"bookreview/internal/catalog"
	"bookreview/internal/config"
	"bookreview/internal/httpx"
	"bookreview/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const bannerText = "This API endpoint is for Book Review System"

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	cfg       *config.Config
	log       *zap.Logger
	db        pinger
	rateLimit *httpx.RateLimitMiddleware
	catalog   *catalog.HTTPHandler
	auth      *auth.HTTPHandler
	users     *user.HTTPHandler
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.AccessLogMiddleware(d.log))
	r.Use(httpx.RecoveryMiddleware(d.log))
	r.Use(httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS))
	r.Use(httpx.CORSMiddleware(d.cfg.CORSAllowedOrigins))
	r.Use(d.rateLimit.Middleware)
	r.Use(httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			d.log.Warn("readiness check failed", zap.Error(err))
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	requireAuth := httpx.AuthMiddleware(d.cfg.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(bannerText))
		})

		r.Post("/signup", d.auth.Signup)
		r.Post("/login", d.auth.Login)
		r.With(requireAuth).Get("/me", d.users.GetCurrentUser)

		d.catalog.Routes(r, requireAuth)
	})

	return r
}
