// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"israa-academy/internal/config"
	pg "israa-academy/internal/infra/db/postgres"
	"israa-academy/internal/infra/i18n"
	"israa-academy/internal/infra/logging"
	"israa-academy/internal/infra/metrics"
	red "israa-academy/internal/infra/redis"
	"israa-academy/internal/infra/web"
	"israa-academy/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	if err := pg.RunMigrations(cfg.Database.URL); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	limiter := red.NewActivationLimiter(redisClient, cfg.Activation.MaxAttempts, cfg.Activation.AttemptWindow)

	// ---- Repositories ----
	codeRepo := pg.NewActivationCodeRepo(pool)
	grantRepo := pg.NewAccessGrantRepo(pool)
	courseRepo := pg.NewCourseRepoCacheDecorator(pg.NewCourseRepo(pool), redisClient, cfg.Redis.TTL)
	userRepo := pg.NewUserRepo(pool)
	commentRepo := pg.NewCommentRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Use cases ----
	activationUC := usecase.NewActivationUseCase(codeRepo, grantRepo, courseRepo, txManager, logger)
	courseUC := usecase.NewCourseUseCase(courseRepo, logger)
	userUC := usecase.NewUserUseCase(userRepo, grantRepo, logger)
	commentUC := usecase.NewCommentUseCase(commentRepo, courseRepo, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, codeRepo, grantRepo, logger)

	// ---- i18n ----
	reg, err := i18n.NewRegistry(i18n.LocalesFS, cfg.I18n.Default)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Admin.JWTSecret, cfg.Admin.SecureCookie, cfg.Admin.CookieDomain, cfg.Admin.SessionTTL)
	srv := web.NewServer(activationUC, courseUC, userUC, commentUC, statsUC, auth, cfg.Admin.APIKey, limiter, reg, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
