// Package main is the entry point for the route simulator. It turns each
// trip-start event into a paced series of telemetry samples.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Admir-Walker/Fleet-Management-System/internal/config"
	"github.com/Admir-Walker/Fleet-Management-System/internal/queue"
	"github.com/Admir-Walker/Fleet-Management-System/internal/simulator"
)

func main() {
	if err := run(); err != nil {
		slog.Error("simulator stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.ServiceSimulator)
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel, config.ServiceSimulator)
	slog.SetDefault(logger)

	contract, err := queue.ParseContract(cfg.AckMode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mq, err := queue.Dial(ctx, cfg.RabbitMQURL, queue.DialOptions{Attempts: 10, Backoff: time.Second}, logger)
	if err != nil {
		return err
	}
	defer mq.Close()
	if err := mq.Declare(cfg.TripStartQueue, cfg.TelemetryQueue); err != nil {
		return err
	}

	sim := simulator.New(mq, cfg.TelemetryQueue, cfg.SimulatorInterval, logger)

	err = mq.Consume(ctx, cfg.TripStartQueue, contract, cfg.Prefetch, sim.Handle)
	// Runs in flight observe ctx and stop at their next pause.
	sim.Wait()
	logger.Info("simulator stopped")
	return err
}
