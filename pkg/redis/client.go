package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis for rate limiting. Returns nil (no error) when
// no URL is configured; callers fall back to in-memory limiting.
func NewClient(url, password string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		// Accept bare host:port too
		if !strings.Contains(url, "://") {
			opts = &redis.Options{Addr: url}
		} else {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
	}
	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
