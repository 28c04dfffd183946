package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-language-bot/internal/config"
	"telegram-language-bot/internal/infra/metrics"
	"telegram-language-bot/internal/usecase"
)

const requestTimeout = 15 * time.Second

// PoolStats reports total, idle and in-use connections.
type PoolStats func() (total, idle, inUse int32)

// Deps is everything the admin router serves from.
type Deps struct {
	Accounts       usecase.AccountUseCase
	Stats          usecase.StatsUseCase
	Catalog        usecase.CatalogUseCase
	PremiumContent usecase.PremiumContentUseCase
	Quizzes        usecase.QuizUseCase
	Progress       usecase.ProgressUseCase

	Auth    *AuthManager
	Limiter Limiter

	// optional
	Health    func(r *http.Request) error
	PoolStats PoolStats
	Now       func() time.Time
}

// NewRouter builds the admin API. Only /api/v1 is behind the token guard.
func NewRouter(cfg config.AdminConfig, d Deps, logger *zerolog.Logger) http.Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(logger), Recover(logger), Timeout(requestTimeout))

	r.Get("/health", healthHandler(d.Health))
	r.Handle("/metrics", metricsHandler(d.PoolStats))

	r.Route("/api/v1", func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(RateLimit(d.Limiter, cfg.RateLimit, cfg.RateWindow, logger))
		}
		r.Use(RequireAdmin(d.Auth, logger))

		r.Get("/stats", statsHandler(d.Stats, logger))
		r.Get("/leaderboard", leaderboardHandler(d.Accounts, logger))
		r.Get("/users/{id}", userGetHandler(d.Accounts, d.Progress, now, logger))
		r.Post("/users/{id}/premium", premiumGrantHandler(d.Accounts, logger))
		r.Delete("/users/{id}/premium", premiumRevokeHandler(d.Accounts, logger))
		r.Get("/premium-content", premiumContentListHandler(d.PremiumContent, logger))
		r.Delete("/sections/{id}", sectionDeleteHandler(d.Catalog, logger))
		r.Delete("/quizzes/{id}", quizDeleteHandler(d.Quizzes, logger))
	})
	return r
}

// metricsHandler refreshes pool gauges on every scrape.
func metricsHandler(stats PoolStats) http.Handler {
	h := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if stats != nil {
			metrics.SetDBPoolStats(stats())
		}
		h.ServeHTTP(w, r)
	})
}

type Server struct {
	server *http.Server
	log    *zerolog.Logger
}

func NewServer(cfg config.AdminConfig, handler http.Handler, logger *zerolog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: logger,
	}
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("admin api listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
