package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment        string `envconfig:"ENV" default:"development"`
	Port               string `envconfig:"PORT" default:"8080"`
	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`

	// Receipt storage (S3-compatible)
	S3URL       string `envconfig:"RECEIPTS_S3_URL" required:"true"`
	S3Bucket    string `envconfig:"RECEIPTS_S3_BUCKET" default:"receipts"`
	S3Region    string `envconfig:"RECEIPTS_S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"RECEIPTS_S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"RECEIPTS_S3_SECRET_KEY" required:"true"`

	// Domain events (Google Pub/Sub)
	GCPProjectID string `envconfig:"GCP_PROJECT_ID"`
	EventTopic   string `envconfig:"EVENT_TOPIC" default:"club-events"`

	// Notification worker settings
	NotifyQueueName           string `envconfig:"NOTIFY_QUEUE_NAME" default:"notification_queue"`
	NotifyPollTimeoutSec      int    `envconfig:"NOTIFY_POLL_TIMEOUT_SEC" default:"30"`
	NotifyPollMaxMsg          int    `envconfig:"NOTIFY_POLL_MAX_MSG" default:"1"`
	NotifyMaxRetries          int    `envconfig:"NOTIFY_MAX_RETRIES" default:"5"`
	NotifyBackoffInitialSec   int    `envconfig:"NOTIFY_BACKOFF_INITIAL_SEC" default:"1"`
	NotifyBackoffMaxSec       int    `envconfig:"NOTIFY_BACKOFF_MAX_SEC" default:"60"`
	NotifyDeadLetterQueueName string `envconfig:"NOTIFY_DEAD_LETTER_QUEUE_NAME" default:"notification_queue_dlq"`
	NotifyWebhookURL          string `envconfig:"NOTIFY_WEBHOOK_URL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
