package main

import (
	"context"
	"os/signal"
	"syscall"

	"app/internal/api/v1/router"
	"app/internal/config"
	"app/internal/logger"
	"app/internal/orchestrator/transcripts"
	"app/internal/pgmq"

	"github.com/joho/godotenv"
)

func main() {
	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	db, err := router.OpenDB(cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB connection: %v", err)
	}
	defer db.Close()

	pgmqClient := pgmq.New(db)
	logger.Info().Msg("PGMQ client initialized")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := transcripts.Run(ctx, logger, pgmqClient, db); err != nil {
		logger.Fatal().Msgf("Transcript orchestrator failed: %v", err)
	}

	logger.Info().Msg("Transcript orchestrator stopped gracefully")
}
