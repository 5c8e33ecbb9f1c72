package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kopilka/internal/amqp"
	"kopilka/internal/backend"
	"kopilka/internal/config"
	"kopilka/internal/export"
	"kopilka/internal/export/google"
	exportmemory "kopilka/internal/export/memory"
	applog "kopilka/internal/log"
	"kopilka/internal/services"
	"kopilka/internal/worker"
)

func main() {
	// .env for local development, absent in production
	_ = godotenv.Load()

	logConfig := applog.DefaultConfig()
	logConfig.Component = applog.ComponentWorker
	logger := applog.New(logConfig)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	rates, err := cfg.Rates()
	if err != nil {
		logger.Error("Failed to parse currency rates", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		StoreURL:     cfg.StoreURL,
		StoreTimeout: cfg.StoreTimeout,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	var writer export.StatsWriter
	if os.Getenv("GOOGLE_SPREADSHEET_ID") != "" {
		sheetsClient, err := google.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = sheetsClient
		logger.Info("Exporting snapshots to Google Sheets")
	} else {
		writer = exportmemory.New()
		logger.Warn("GOOGLE_SPREADSHEET_ID not set, snapshots are kept in memory only")
	}

	amqpClient, err := amqp.DialWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	stats := services.NewStatsService(result.Store, rates)
	exporter := worker.NewExportWorker(stats, writer)

	go func() {
		err := amqpClient.ConsumeLedgerEvents(ctx, func(event *amqp.LedgerEvent) error {
			return exporter.HandleLedgerEvent(ctx, event)
		})
		if err != nil {
			logger.Error("Consumer stopped", "error", err)
			cancel()
		}
	}()

	logger.Info("Export worker started",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		"backend", cfg.DataBackend)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}

	logger.Info("Export worker stopped")
}
