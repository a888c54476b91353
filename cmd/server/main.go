package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/adpilot/agency-portal/internal/api"
	"github.com/adpilot/agency-portal/internal/infrastructure/config"
	memorydb "github.com/adpilot/agency-portal/internal/infrastructure/db/memory"
	mongodb "github.com/adpilot/agency-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/adpilot/agency-portal/internal/infrastructure/db/redis"
	"github.com/adpilot/agency-portal/internal/pkg/ratelimit"
	"github.com/adpilot/agency-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	// The in-memory fallback loses every session and user on restart, which
	// is acceptable for local development only.
	if cfg.IsProduction() && cfg.Mongo.URI == "" {
		log.Fatal().Msg("MONGO_URI is required when ENV=production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{Config: cfg, Logger: log}

	var mongoClient *mongodriver.Client
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		mongoClient = client

		users := mongodb.NewUserRepository(db)
		reports := mongodb.NewReportRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("user index creation failed")
		}
		if err := reports.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("report index creation failed")
		}

		deps.Mongo = db
		deps.Users = users
		deps.Clients = mongodb.NewClientRepository(db)
		deps.Reports = reports
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")
	} else {
		log.Warn().Msg("MONGO_URI not set, using in-memory repositories")
		deps.Users = memorydb.NewUserRepository()
		deps.Clients = memorydb.NewClientRepository()
		deps.Reports = memorydb.NewReportRepository()
	}

	var memLimiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		deps.Redis = rdb
		deps.Sessions = redisdb.NewSessionStore(rdb, cfg.Session.TTL, cfg.Session.RenewWithin)
		deps.Limiter = redisdb.NewRateLimiter(rdb, cfg.Login.Window, cfg.Login.MaxAttempts, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions and rate limiting stay in-process")
		deps.Sessions = memorydb.NewSessionStore(cfg.Session.TTL, cfg.Session.RenewWithin)
		memLimiter = ratelimit.New(cfg.Login.Window, cfg.Login.MaxAttempts)
		deps.Limiter = memLimiter
	}

	// Redis entries expire on their own; the in-process limiter needs a
	// periodic sweep to drop stale buckets.
	if memLimiter != nil {
		go func() {
			ticker := time.NewTicker(cfg.Login.Window)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := memLimiter.Sweep(); n > 0 {
						log.Debug().Int("removed", n).Msg("rate limit buckets swept")
					}
				}
			}
		}()
	}

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portal started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}
	if deps.Redis != nil {
		if err := deps.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}

	log.Info().Msg("portal stopped")
}
