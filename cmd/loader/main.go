package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmaher/stockdata/internal/config"
	"github.com/dmaher/stockdata/internal/database"
	"github.com/dmaher/stockdata/internal/ingest"
	"github.com/dmaher/stockdata/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/local.yaml", "path to config file")
	csvPath := flag.String("csv", "", "path to source CSV (overrides ingest.csv_path)")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting loader",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	path := cfg.Ingest.CSVPath
	if *csvPath != "" {
		path = *csvPath
	}
	if path == "" {
		logger.Error("no CSV path: set ingest.csv_path or pass -csv")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	loader := ingest.NewLoader(pool, cfg.Ingest.BatchSize, logger)
	report, err := loader.LoadFile(ctx, path)
	if err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"run_id", report.RunID,
		"source", report.Source,
		"rows_loaded", report.RowsLoaded,
		"rows_rejected", report.RowsRejected,
		"duplicate_dates", report.DuplicateDates,
		"dropped_columns", report.DroppedColumns,
		"duration", report.Duration,
	)
}
