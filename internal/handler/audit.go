package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

// HistoryQueue is where the API publishes audit events; the audit worker
// consumes it.
const HistoryQueue = "history_queue"

// publishHistory hands a mutation record to the audit queue. Fire and forget:
// a sink failure is logged and never fails the operation that triggered it.
func (h *Handler) publishHistory(action domain.HistoryAction, actorID, shopID int64, payload any) {
	message := domain.HistoryMessage{
		Action:     action,
		ActorID:    actorID,
		ShopID:     shopID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		slog.Error("failed to encode history message", "action", action, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.auditChannel.PublishWithContext(
		ctx,
		"",
		HistoryQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("failed to publish history message", "action", action, "error", err)
	}
}

// acquireShiftLock takes a short redis lease on one (shop, date) so two
// concurrent auto-assign runs fail fast with a conflict instead of
// interleaving their per-date writes. The returned release drops the lease.
func (h *Handler) acquireShiftLock(ctx context.Context, shopID int64, date string) (func(), error) {
	key := fmt.Sprintf("shift_lock_%d_%s", shopID, date)

	acquired, err := h.redisClient.SetNX(ctx, key, 1, time.Duration(h.config.Redis.LockExpiration)*time.Second).Result()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("shift for shop %d on %s is being modified: %w", shopID, date, domain.ErrConflict)
	}

	release := func() {
		if err := h.redisClient.Del(context.Background(), key).Err(); err != nil {
			slog.Error("failed to release shift lock", "key", key, "error", err)
		}
	}
	return release, nil
}
