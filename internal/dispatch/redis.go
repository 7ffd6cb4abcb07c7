package dispatch

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRelay publishes hint payloads on a pub/sub channel so other processes
// can follow the session. Nothing is stored.
type RedisRelay struct {
	client  *redis.Client
	channel string
}

func NewRedisRelay(client *redis.Client, channel string) *RedisRelay {
	return &RedisRelay{client: client, channel: channel}
}

func (r *RedisRelay) Name() string { return "redis:" + r.channel }

func (r *RedisRelay) Publish(ctx context.Context, payload []byte) error {
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", r.channel, err)
	}
	return nil
}
