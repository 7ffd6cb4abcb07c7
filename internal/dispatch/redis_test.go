package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRelay_PublishError(t *testing.T) {
	req := require.New(t)
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	relay := NewRedisRelay(client, "coach:hints")
	req.Equal("redis:coach:hints", relay.Name())

	err := relay.Publish(context.Background(), []byte(`{}`))
	req.ErrorContains(err, "redis publish coach:hints")
}
