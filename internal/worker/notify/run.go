// Package notify drains the notification queue and forwards each event to
// the configured webhook, typically a chat or email relay. Jobs that
// exhaust their retries land on the dead-letter queue.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"dettyclub/internal/config"
	"dettyclub/internal/pgmq"
)

// Run starts the notification worker loop. It blocks until the context is
// cancelled.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, client *pgmq.Client) error {
	queue := cfg.NotifyQueueName
	logger.Info().Str("queue", queue).Str("webhook", cfg.NotifyWebhookURL).Msg("Starting notification worker")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down notification worker")
			return nil
		default:
		}

		msgs, err := client.ReadWithPoll(ctx, queue, cfg.NotifyPollTimeoutSec, cfg.NotifyPollMaxMsg)
		if err != nil {
			logger.Error().Err(err).Msg("Error reading notification queue")
			time.Sleep(time.Second)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		msg := msgs[0]
		logger.Info().Int64("msg_id", msg.ID).Msg("Received notification job")

		httpErr := deliver(ctx, cfg, logger, msg.Data)
		if httpErr != nil {
			dlq := cfg.NotifyDeadLetterQueueName
			if err := client.Send(ctx, dlq, msg.Data); err != nil {
				logger.Error().Err(err).Str("dlq", dlq).Msg("Failed to send message to dead-letter queue")
			}
			logger.Warn().
				Int("attempts", cfg.NotifyMaxRetries).
				Int64("msg_id", msg.ID).
				Err(httpErr).
				Msg("Exhausted all notification retries; moving job to DLQ")
		}

		// Acknowledge the message either way; failures live on the DLQ now.
		if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
			logger.Error().Err(err).Msg("Error deleting notification message")
		}
	}
}

// deliver posts the payload to the webhook with exponential backoff. A nil
// return means one of the attempts got a 2xx back.
func deliver(ctx context.Context, cfg *config.Config, logger zerolog.Logger, payload []byte) error {
	backoff := time.Duration(cfg.NotifyBackoffInitialSec) * time.Second
	maxBackoff := time.Duration(cfg.NotifyBackoffMaxSec) * time.Second

	var httpErr error
	for attempt := 1; attempt <= cfg.NotifyMaxRetries; attempt++ {
		ctxReq, cancel := context.WithTimeout(ctx, 10*time.Second)
		req, _ := http.NewRequestWithContext(ctxReq, http.MethodPost, cfg.NotifyWebhookURL, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		start := time.Now()
		resp, err := http.DefaultClient.Do(req)
		duration := time.Since(start)
		cancel()

		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			resp.Body.Close()
			logger.Info().Str("duration", duration.String()).Msg("Notification delivered")
			return nil
		}
		if err == nil {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			httpErr = fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
		} else {
			httpErr = err
		}
		logger.Error().Err(httpErr).Int("attempt", attempt).Msg("Webhook call failed, retrying")

		select {
		case <-ctx.Done():
			return httpErr
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return httpErr
}
