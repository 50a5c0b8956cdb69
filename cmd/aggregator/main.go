// Package main is the entry point for the telemetry aggregator. It stores
// per-trip trails and publishes a reward when a trip finishes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Admir-Walker/Fleet-Management-System/internal/aggregator"
	"github.com/Admir-Walker/Fleet-Management-System/internal/config"
	"github.com/Admir-Walker/Fleet-Management-System/internal/queue"
	"github.com/Admir-Walker/Fleet-Management-System/internal/repo"
	"github.com/Admir-Walker/Fleet-Management-System/internal/trail"
)

func main() {
	if err := run(); err != nil {
		slog.Error("aggregator stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.ServiceAggregator)
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel, config.ServiceAggregator)
	slog.SetDefault(logger)

	contract, err := queue.ParseContract(cfg.AckMode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openTrailStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("trail store ready", "backend", cfg.TrailBackend)

	mq, err := queue.Dial(ctx, cfg.RabbitMQURL, queue.DialOptions{Attempts: 10, Backoff: time.Second}, logger)
	if err != nil {
		return err
	}
	defer mq.Close()
	if err := mq.Declare(cfg.TelemetryQueue, cfg.RewardQueue); err != nil {
		return err
	}

	agg := aggregator.New(store, mq, cfg.RewardQueue, cfg.IdempotentFinish, logger)

	err = mq.Consume(ctx, cfg.TelemetryQueue, contract, cfg.Prefetch, agg.Handle)
	logger.Info("aggregator stopped")
	return err
}

// openTrailStore builds the backend named by cfg.TrailBackend. The returned
// func releases its connections.
func openTrailStore(ctx context.Context, cfg config.Config) (aggregator.TrailStore, func(), error) {
	switch cfg.TrailBackend {
	case config.TrailPostgres:
		pool, err := repo.Connect(ctx, cfg.DatabaseURL, cfg.RunMigrations)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewTrailRepo(pool), pool.Close, nil
	case config.TrailRedis:
		rdb, err := trail.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return trail.NewRedisStore(rdb, cfg.TrailTTL), func() { _ = rdb.Close() }, nil
	case config.TrailMemory:
		return trail.NewMemoryStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown trail backend %q", cfg.TrailBackend)
}
