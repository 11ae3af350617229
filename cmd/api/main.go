package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirpyerre/posts-gateway/internal/api"
	"github.com/sirpyerre/posts-gateway/internal/infrastructure/config"
	"github.com/sirpyerre/posts-gateway/internal/infrastructure/db/redis"
	"github.com/sirpyerre/posts-gateway/internal/infrastructure/queue"
	"github.com/sirpyerre/posts-gateway/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	audit := queue.NewDispatcher(cfg.Audit.Workers, log)
	audit.Start(ctx)

	e := api.NewRouter(cfg, rdb, audit, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
