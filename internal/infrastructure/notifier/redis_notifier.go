package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher is the part of a redis client used for pub/sub.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publishes notification events as JSON on a pub/sub channel.
type RedisNotifier struct {
	client  RedisPublisher
	channel string
}

var _ interfaces.INotifier = (*RedisNotifier)(nil)

func NewRedisNotifier(client RedisPublisher, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, event entities.NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish on %s: %w", n.channel, err)
	}
	return nil
}
