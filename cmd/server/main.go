package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gsarma/codepad/internal/api"
	"github.com/gsarma/codepad/internal/auth"
	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/config"
	"github.com/gsarma/codepad/internal/drafts"
	"github.com/gsarma/codepad/internal/logger"
	"github.com/gsarma/codepad/internal/store"
	"github.com/gsarma/codepad/internal/worker"
)

const draftTTL = 30 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Mode: cfg.Env})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if err := cfg.ValidateServer(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := store.Migrate(ctx, pool); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// Drafts degrade to 500s; execution and sharing keep working.
		zlog.Warn("redis unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	engine, err := code.NewJudge0Client(cfg.Judge0)
	if err != nil {
		zlog.Fatal("failed to configure judge0", zap.Error(err))
	}
	runner := code.NewRunner(engine, code.WithPollConfig(cfg.Poll), code.WithLogger(zlog.Named("runner")))

	queries := store.New(pool)
	h := api.NewHandler(queries, runner, drafts.NewStore(rdb, draftTTL), zlog)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.RegisterRoutes(router, h, auth.NewVerifier(cfg.JWTSecret), zlog)

	w := worker.New(queries, h, cfg.WorkerConcurrency, worker.WithLogger(zlog.Named("worker")))

	switch cfg.Mode {
	case "worker":
		zlog.Info("starting in worker-only mode")
		w.Start(ctx) // blocks until ctx cancelled
	case "api":
		// API-only: no embedded worker goroutines; scale workers separately.
		zlog.Info("starting in api-only mode", zap.String("port", cfg.Port))
		if err := router.Run(":" + cfg.Port); err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	default:
		// Default: run both API server and worker in the same process.
		go w.Start(ctx)

		zlog.Info("starting api and worker", zap.String("port", cfg.Port))
		if err := router.Run(":" + cfg.Port); err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	}
}
