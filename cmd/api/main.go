package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"schoolhub/api/internal/cache"
	"schoolhub/api/internal/config"
	"schoolhub/api/internal/database"
	"schoolhub/api/internal/handlers"
	"schoolhub/api/internal/jobs"
	"schoolhub/api/internal/log"
	"schoolhub/api/internal/repository"
	"schoolhub/api/internal/server"
	"schoolhub/api/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	if cfg.Postgres.Migrate {
		if err := database.Migrate(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate postgres")
		}
	}

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	backend, purger, err := sessionBackend(cfg.Session, dbPool, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init session store")
	}

	handlerSet, err := handlers.NewHandlerSet(handlers.Deps{
		Log:        logger,
		Config:     cfg,
		Accounts:   repository.NewAccountRepository(dbPool),
		Classrooms: repository.NewClassroomRepository(dbPool),
		Sessions:   session.NewManager(backend, cfg.Session, logger),
		DB:         dbPool,
		Cache:      redisClient,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init handlers")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet, registry)

	scheduler := jobs.NewScheduler(purger, cfg.Session.PurgeSchedule, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

// sessionBackend picks where session records live. The purger is nil when the
// backend expires records on its own.
func sessionBackend(cfg config.SessionConfig, db *pgxpool.Pool, redisClient *redis.Client) (session.Backend, session.Purger, error) {
	switch cfg.Backend {
	case "postgres":
		repo := repository.NewSessionRepository(db)
		return repo, repo, nil
	case "redis":
		if redisClient == nil {
			return nil, nil, fmt.Errorf("session backend redis requires redis.addr")
		}
		return session.NewRedisBackend(redisClient), nil, nil
	case "memory":
		mem := session.NewMemoryBackend()
		return mem, mem, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn().Msg("session purge still running at shutdown")
	}

	db.Close()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
