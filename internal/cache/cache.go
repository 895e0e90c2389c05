// Package cache is a Redis read-through layer over a term source. Records
// are stored as JSON under a key prefix with a TTL; misses fall through to
// the wrapped source and populate the cache on the way back.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/phanxgames/lexisphere"
)

// Cache wraps a TermLoader with a Redis read-through.
type Cache struct {
	client *backend.Client
	source lexisphere.TermLoader
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Cache)

// WithTTL sets the expiration for cached records. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached records.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithLogger sets the logger for cache faults.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a cache over source backed by the Redis server at address.
func New(address string, source lexisphere.TermLoader, opts ...Option) *Cache {
	client := backend.NewClient(&backend.Options{Addr: address})
	return NewFromClient(client, source, opts...)
}

// NewFromClient creates a cache over source from an existing client.
func NewFromClient(client *backend.Client, source lexisphere.TermLoader, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		source: source,
		prefix: "lexisphere:term:",
		ttl:    5 * time.Minute,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(id string) string {
	return c.prefix + id
}

// LoadTermByID implements lexisphere.TermLoader. Redis faults are logged
// and treated as misses, so a dead cache degrades to the source rather
// than failing loads.
func (c *Cache) LoadTermByID(ctx context.Context, id string) (*lexisphere.TermRecord, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var rec lexisphere.TermRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
		c.logger.Warn("cache: dropping corrupt entry", "id", id)
		_ = c.client.Del(ctx, c.key(id)).Err()
	case !errors.Is(err, backend.Nil):
		c.logger.Warn("cache: get failed", "id", id, "error", err)
	}

	rec, err := c.source.LoadTermByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache: set failed", "id", id, "error", err)
		}
	}
	return rec, nil
}

// Invalidate drops a cached record.
func (c *Cache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", id, err)
	}
	return nil
}

// Close releases the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
