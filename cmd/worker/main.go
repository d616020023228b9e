package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"dettyclub/internal/config"
	"dettyclub/internal/logger"
	"dettyclub/internal/pgmq"
	"dettyclub/internal/worker/notify"
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
	if cfg.NotifyWebhookURL == "" {
		logger.Fatal().Msg("NOTIFY_WEBHOOK_URL is required for the notification worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBConnectionString)
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB pool: %v", err)
	}
	defer pool.Close()

	client := pgmq.New(pool)
	if err := notify.Run(ctx, cfg, logger, client); err != nil {
		logger.Fatal().Msgf("Notification worker exited: %v", err)
	}
}
