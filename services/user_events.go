package services

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Macro-Tracker-Platform/intake-service/logger"
)

// UserDeletedEvent asks this service to remove (the next batch of) intake data
// belonging to a deleted user. The batch-deletion step republishes the same
// event until the user has no rows left, so delivery must be at-least-once
// tolerant, which it is: already-deleted rows are simply not selected again.
type UserDeletedEvent struct {
	UserID uint `json:"userId"`
}

// UserEventProducer publishes user lifecycle events, fire-and-forget.
type UserEventProducer interface {
	SendUserDeletedEvent(ctx context.Context, event UserDeletedEvent) error
}

func userEventsChannel() string {
	ch := strings.TrimSpace(os.Getenv("USER_EVENTS_CHANNEL"))
	if ch == "" {
		ch = "user-events"
	}
	return ch
}

// RedisUserEventProducer publishes events on a redis pub/sub channel.
type RedisUserEventProducer struct {
	rdb     *redis.Client
	channel string
}

func NewRedisUserEventProducer(rdb *redis.Client) *RedisUserEventProducer {
	return &RedisUserEventProducer{rdb: rdb, channel: userEventsChannel()}
}

func (p *RedisUserEventProducer) SendUserDeletedEvent(ctx context.Context, event UserDeletedEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, raw).Err()
}

// StartUserEventConsumer subscribes to the user events channel and hands each
// decoded event to the handler. It returns once the subscription is confirmed;
// message dispatch runs on a background goroutine until ctx is cancelled.
func StartUserEventConsumer(ctx context.Context, rdb *redis.Client, handler func(ctx context.Context, event UserDeletedEvent)) error {
	sub := rdb.Subscribe(ctx, userEventsChannel())

	// make sure the subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var event UserDeletedEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					logger.Warn("bad user event payload", "payload", m.Payload, "error", err)
					continue
				}
				handler(ctx, event)
			}
		}
	}()

	return nil
}
