package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"associates/internal/api"
	"associates/internal/api/handlers"
	"associates/internal/api/middleware"
	"associates/internal/pkg/logger"
	"associates/internal/platform/audit"
	"associates/internal/platform/auth"
	"associates/internal/platform/clients"
	"associates/internal/platform/config"
	"associates/internal/platform/metrics"
	"associates/internal/platform/session"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init(cfg.Logging)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret is required to issue session tokens")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	m := metrics.New(clock)

	// Services
	sessions := session.NewStore(session.PAAPIFactory(clients.Options(cfg.PAAPI)...), cfg.Dashboard.SessionTTL, clock)
	go sessions.Run(ctx, time.Minute)

	tokenSvc := auth.NewTokenService(cfg.JWT, clock)
	auditLog := audit.NewLogger()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.APIPerMinute, clock, m)
	go rateLimiter.Run(ctx)

	// Router
	deps := &api.Dependencies{
		SessionHandler:  handlers.NewSessionHandler(sessions, tokenSvc, cfg.PAAPI, cfg.Dashboard, m, auditLog),
		ProductHandler:  handlers.NewProductHandler(m, auditLog, clock),
		SocialHandler:   handlers.NewSocialHandler(m),
		AnalysisHandler: handlers.NewAnalysisHandler(m, auditLog, clock),
		HealthHandler:   handlers.NewHealthHandler(sessions),
		MetricsHandler:  handlers.NewMetricsHandler(m),
		AuthMiddleware:  middleware.NewAuthMiddleware(tokenSvc, sessions),
		RateLimiter:     rateLimiter,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.RequestLogger(m, router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().
		Str("addr", addr).
		Str("marketplace", cfg.PAAPI.Marketplace).
		Bool("default_credentials", cfg.PAAPI.HasDefaultCredentials()).
		Msg("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server stopped")
}
