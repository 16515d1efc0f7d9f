package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voltra-app/voltra-go/internal/config"
	"github.com/voltra-app/voltra-go/internal/handler"
	"github.com/voltra-app/voltra-go/internal/middleware"
	"github.com/voltra-app/voltra-go/internal/repository"
	"github.com/voltra-app/voltra-go/internal/service"
	"github.com/voltra-app/voltra-go/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.StorePingTimeout)
	if err := store.Ping(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to ping storage")
	}
	cancel()
	log.Info().Str("backend", cfg.StorageBackend).Msg("storage connected")

	directoryRepo := repository.NewDirectoryRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	orgRepo := repository.NewOrganizationRepository(store)

	sessionService := service.NewSessionService(sessionRepo, directoryRepo)
	authService := service.NewAuthService(directoryRepo, sessionService)
	orgService := service.NewOrganizationService(orgRepo)
	opportunityService := service.NewOpportunityService(orgService)
	matcherService := service.NewMatcherService(cfg.MatcherURL, cfg.MatcherRequestTimeout())

	startupCtx, startupCancel := context.WithTimeout(context.Background(), config.StorePingTimeout)
	if err := sessionService.Restore(startupCtx); err != nil {
		log.Error().Err(err).Msg("failed to restore session, starting logged out")
	}
	if err := orgService.Restore(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to load organizations")
	}
	startupCancel()

	authHandler := handler.NewAuthHandler(authService, sessionService)
	profileHandler := handler.NewProfileHandler(sessionService)
	orgHandler := handler.NewOrganizationHandler(orgService, sessionService)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService, matcherService, sessionService)
	dataHandler := handler.NewDataHandler(sessionService, orgService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/profile", profileHandler.Routes())
		r.Mount("/organizations", orgHandler.Routes())
		r.Mount("/opportunities", opportunityHandler.Routes())
		r.Mount("/feed", opportunityHandler.FeedRoutes())
		r.Delete("/data", dataHandler.Reset)
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		return storage.NewRedisStore(cfg.RedisURL)
	case config.BackendPostgres:
		return storage.NewPostgresStore(cfg.DatabaseURL)
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewFileStore(cfg.DataDir)
	}
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
