package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-language-bot/internal/config"
	"telegram-language-bot/internal/infra/api"
	pg "telegram-language-bot/internal/infra/db/postgres"
	"telegram-language-bot/internal/infra/logging"
	"telegram-language-bot/internal/infra/metrics"
	red "telegram-language-bot/internal/infra/redis"
	"telegram-language-bot/internal/usecase"
)

// set with -ldflags "-X main.version=... -X main.commit=..."
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted fields)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Str("dsn", logging.Redact(cfg.Database.URL, cfg.Runtime.Dev)).Msg("postgres")
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	userRepo := pg.NewUserRepoCacheDecorator(pg.NewUserRepo(pool), redisClient, cfg.Redis.TTL, logger)
	referralRepo := pg.NewReferralRepo(pool)
	sectionRepo := pg.NewSectionRepo(pool)
	subsectionRepo := pg.NewSubsectionRepo(pool)
	contentRepo := pg.NewContentRepo(pool)
	premiumRepo := pg.NewPremiumContentRepo(pool)
	quizRepo := pg.NewQuizRepo(pool)
	attemptRepo := pg.NewAttemptRepo(pool)
	statsRepo := pg.NewStatsRepo(pool)
	progressRepo := pg.NewProgressRepo(pool)

	// ---- Use cases ----
	accountUC := usecase.NewAccountUseCase(userRepo, referralRepo, tm, logger,
		usecase.WithPremiumDuration(cfg.PremiumDuration()),
		usecase.WithLeaderboardLimit(cfg.Leaderboard.DefaultLimit),
	)
	catalogUC := usecase.NewCatalogUseCase(sectionRepo, subsectionRepo, contentRepo, logger)
	premiumUC := usecase.NewPremiumContentUseCase(premiumRepo, logger)
	quizUC := usecase.NewQuizUseCase(quizRepo, attemptRepo, userRepo, tm, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, sectionRepo, contentRepo, quizRepo, attemptRepo, statsRepo, logger)
	progressUC := usecase.NewProgressUseCase(progressRepo, logger)

	// ---- Admin API ----
	router := api.NewRouter(cfg.Admin, api.Deps{
		Accounts:       accountUC,
		Stats:          statsUC,
		Catalog:        catalogUC,
		PremiumContent: premiumUC,
		Quizzes:        quizUC,
		Progress:       progressUC,
		Auth:           api.NewAuthManager(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL),
		Limiter:        red.NewRateLimiter(redisClient),
		Health: func(r *http.Request) error {
			return pool.Ping(r.Context())
		},
		PoolStats: func() (int32, int32, int32) {
			s := pool.Stat()
			return s.TotalConns(), s.IdleConns(), s.AcquiredConns()
		},
	}, logger)
	server := api.NewServer(cfg.Admin, router, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("admin api stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigc:
		logger.Info().Msg("shutdown requested")
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("admin api shutdown")
	}
}
