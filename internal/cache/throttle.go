package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle enforces a cooldown between repeated actions on a key.
type Throttle interface {
	Allow(ctx context.Context, key string, cooldown time.Duration) (bool, error)
}

type redisThrottle struct {
	client *redis.Client
}

// NewRedisThrottle connects to Redis for the passcode-email cooldown.
func NewRedisThrottle(redisURL string) (Throttle, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisThrottle{client: client}, nil
}

// Allow returns true if the key is outside its cooldown window and
// starts a new window; false means the action should be rejected.
func (r *redisThrottle) Allow(ctx context.Context, key string, cooldown time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, "throttle:"+key, 1, cooldown).Result()

	if err != nil {
		return false, err
	}

	return ok, nil
}
