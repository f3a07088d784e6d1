package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/config"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/graphql"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/storage"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/usecase"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Set timezone to UTC
	time.Local = time.UTC

	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}

	// Tag every log line of this run with a unique ID
	runID := uuid.NewString()
	log := logger.Log.With(zap.String("run_id", runID))

	log.Info("Starting Daisi WxCC Extractor",
		zap.String("environment", cfg.Environment),
		zap.String("org_id", cfg.API.OrgID),
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("db_path", cfg.Database.Path),
		zap.Int("days_back", cfg.Extract.DaysBack),
	)

	// A termination signal cancels the run between writes
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	// Open the storage handle once for the whole run
	repo, err := storage.NewSqliteRepo(ctx, cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	client := graphql.NewClient(cfg.API.BaseURL, cfg.API.AccessToken, cfg.API.OrgID, cfg.API.QueryTimeout)
	service := usecase.NewIngestService(repo, repo, repo)
	extractor := usecase.NewExtractor(client, service, cfg.Extract.DaysBack)

	runErr := extractor.Run(ctx)

	if err := repo.Close(ctx); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	if runErr != nil {
		log.Error("Extraction failed", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	log.Info("Daisi WxCC Extractor run complete")
}
