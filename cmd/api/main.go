package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/legacyapp/user-service/internal/api"
	"github.com/legacyapp/user-service/internal/api/handler"
	"github.com/legacyapp/user-service/internal/core/service"
	"github.com/legacyapp/user-service/internal/infrastructure/credit"
	mongodb "github.com/legacyapp/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/legacyapp/user-service/internal/infrastructure/db/redis"
	"github.com/legacyapp/user-service/internal/pkg/config"
	"github.com/legacyapp/user-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-service",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	seeds, err := cfg.ClientSeeds()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SEED_CLIENTS")
	}
	if err := mongodb.SeedClients(ctx, db, seeds); err != nil {
		log.Fatal().Err(err).Msg("failed to seed clients")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// --- Collaborators ---
	clients := mongodb.NewClientRepository(db)
	users := mongodb.NewUserRepository(db)
	bureau := credit.NewClient(cfg.Credit.URL, nil, cfg.Credit.Timeout)
	creditLimits := redisdb.NewCreditCache(rdb, bureau, cfg.Redis.CacheTTL, log)

	// --- Services ---
	registration := service.NewRegistrationService(clients, creditLimits, users, service.Policy{
		MinimumAge:         cfg.Registration.MinimumAge,
		MinimumCreditLimit: cfg.Registration.MinimumCreditLimit,
	}, log)

	e := api.NewRouter(api.Deps{
		Users:   registration,
		Clients: service.NewClientService(clients),
		Checks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close redis")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect mongodb")
	}

	log.Info().Msg("shutdown complete")
}
