package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel staleness events travel on.
const Channel = "progress.stale"

// RedisNotifier publishes staleness events to Redis so every server
// instance can wake its own websocket subscribers.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a Redis-backed notifier.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// ProgressStale implements progression.Notifier.
func (n *RedisNotifier) ProgressStale(ctx context.Context, userID, unitID string) error {
	payload, err := json.Marshal(Event{UserID: userID, UnitID: unitID})
	if err != nil {
		return fmt.Errorf("encode staleness event: %w", err)
	}
	if err := n.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish staleness event: %w", err)
	}
	return nil
}

// Relay subscribes to the Redis channel and republishes incoming events
// on the local hub until ctx is cancelled. Run it in its own goroutine on
// each server instance.
func Relay(ctx context.Context, client *redis.Client, hub *Hub) error {
	sub := client.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("staleness subscription closed")
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				slog.Warn("dropping malformed staleness event", "error", err)
				continue
			}
			hub.Publish(evt)
		}
	}
}
