// Package main is the entry point for the fleet gateway.
// It serves the HTTP API and consumes reward events to credit drivers.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Admir-Walker/Fleet-Management-System/api"
	"github.com/Admir-Walker/Fleet-Management-System/internal/config"
	"github.com/Admir-Walker/Fleet-Management-System/internal/handler"
	"github.com/Admir-Walker/Fleet-Management-System/internal/middleware"
	"github.com/Admir-Walker/Fleet-Management-System/internal/queue"
	"github.com/Admir-Walker/Fleet-Management-System/internal/repo"
	"github.com/Admir-Walker/Fleet-Management-System/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load(config.ServiceGateway)
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel, config.ServiceGateway)
	slog.SetDefault(logger)

	contract, err := queue.ParseContract(cfg.AckMode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := repo.Connect(ctx, cfg.DatabaseURL, cfg.RunMigrations)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connection established", "migrated", cfg.RunMigrations)

	// --- Broker -----------------------------------------------------------
	mq, err := queue.Dial(ctx, cfg.RabbitMQURL, queue.DialOptions{Attempts: 10, Backoff: time.Second}, logger)
	if err != nil {
		return err
	}
	defer mq.Close()
	if err := mq.Declare(cfg.TripStartQueue, cfg.RewardQueue); err != nil {
		return err
	}

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	vehicles := repo.NewVehicleRepo(pool)
	drivers := repo.NewDriverRepo(pool)

	fleet := service.NewFleetService(drivers, vehicles, trips)
	dispatch := service.NewDispatchService(trips, vehicles, drivers, mq, cfg.TripStartQueue, logger)

	// --- Router -----------------------------------------------------------
	// RequestID, RealIP, request logging, then panic recovery. CORS answers
	// preflights before the body limit is applied.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", handler.NewServer(fleet, dispatch, api.OpenAPI, logger).Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Run --------------------------------------------------------------
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return mq.Consume(gctx, cfg.RewardQueue, contract, cfg.Prefetch, dispatch.HandleReward)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		// In-flight requests get up to 15 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
