package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spendlens/internal/amqp"
	"spendlens/internal/analytics"
	"spendlens/internal/backend"
	"spendlens/internal/cache"
	"spendlens/internal/config"
	"spendlens/internal/core"
	"spendlens/internal/currency"
	apphttp "spendlens/internal/http"
	"spendlens/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.FieldOperation, log.OpStartup,
			log.FieldError, err)
		os.Exit(1)
	}

	rates := currency.DefaultTable()

	factory := backend.NewFactory(logger.Logger, rates)
	result, err := factory.CreateBackend(context.Background(), backend.Config{
		Type:         backend.BackendType(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		SeedDemoData: cfg.SeedDemoData,
	})
	if err != nil {
		logger.Error("Failed to initialize data backend",
			log.FieldOperation, log.OpStartup,
			"backend", cfg.DataBackend,
			log.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	opts := []analytics.Option{
		analytics.WithCategoryCache(cache.NewTTL[[]core.Category](cfg.CacheTTL, cfg.CacheTTL)),
		analytics.WithRecentLimit(cfg.RecentExpenses),
	}

	// AMQP is optional; without it the engine simply skips refresh events.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without refresh events",
				log.FieldOperation, log.OpStartup,
				log.FieldError, err)
		} else {
			defer client.Close()
			events = client
			opts = append(opts, analytics.WithPublisher(events))
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	engine := analytics.NewEngine(result.Store, rates, cfg.DisplayCurrency, logger, opts...)

	srv := apphttp.NewServer(":"+cfg.Port, engine, result.Store, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Refresh events from other instances invalidate the local category
	// cache; shutdown cancels the loop.
	if events != nil {
		go func() {
			err := events.ConsumeSummaryRefreshed(ctx, func(msg *amqp.SummaryRefreshedMessage) error {
				engine.InvalidateCategories()
				logger.Debug("Category cache invalidated by refresh event",
					log.FieldYear, msg.Year,
					log.FieldMonth, msg.Month,
					log.FieldGeneration, msg.Generation)
				return nil
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Refresh event consumption stopped", log.FieldError, err)
			}
		}()
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting spendlens server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"display_currency", cfg.DisplayCurrency)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
