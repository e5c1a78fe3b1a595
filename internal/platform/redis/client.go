package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"grantflow/internal/platform/config"
)

// Client wraps go-redis with a health probe for the readiness endpoint.
// The project stage store runs WATCH transactions over this client, so
// the pool must be large enough to hold a connection per in-flight
// decision; PoolSize comes from config rather than the driver default.
type Client struct {
	*redis.Client
}

// New dials Redis from the provided configuration and verifies the
// connection with a ping. Returns nil when no URL is configured, which
// callers treat as "redis disabled".
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection still answers pings.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
