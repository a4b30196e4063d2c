package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookstore/catalog-api/internal/api/metrics"
	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// generationTTL bounds how long an untouched generation counter lives. It
// only has to outlast a single read-through.
const generationTTL = 24 * time.Hour

// BookCache stores single books as JSON under book:<id>, guarded by a
// generation counter under book:<id>:gen.
type BookCache struct {
	client *redis.Client
}

// NewBookCache creates a BookCache wrapping the given Redis client.
func NewBookCache(client *redis.Client) *BookCache {
	return &BookCache{client: client}
}

// Get returns ports.ErrCacheMiss and the current generation when the book
// is not cached.
func (c *BookCache) Get(ctx context.Context, id string) (*domain.Book, int64, error) {
	vals, err := c.client.MGet(ctx, c.key(id), c.genKey(id)).Result()
	if err != nil {
		metrics.BookCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, 0, fmt.Errorf("book cache get: %w", err)
	}

	gen, err := parseGeneration(vals[1])
	if err != nil {
		metrics.BookCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, 0, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		metrics.BookCacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, gen, ports.ErrCacheMiss
	}

	var b domain.Book
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		metrics.BookCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, 0, fmt.Errorf("book cache decode: %w", err)
	}
	metrics.BookCacheLookupsTotal.WithLabelValues("hit").Inc()
	return &b, gen, nil
}

// Set writes b only if book:<id>:gen still equals gen. The check and the
// write run in one WATCH/MULTI transaction.
func (c *BookCache) Set(ctx context.Context, b *domain.Book, gen int64, ttl time.Duration) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("book cache encode: %w", err)
	}

	genKey := c.genKey(b.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return ports.ErrCacheStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(b.ID), raw, ttl)
			return nil
		})
		return err
	}, genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return ports.ErrCacheStale
	}
	return err
}

// Invalidate advances the generation and drops the cached book atomically.
func (c *BookCache) Invalidate(ctx context.Context, id string) error {
	genKey := c.genKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, c.key(id))
		return nil
	})
	return err
}

func (c *BookCache) key(id string) string {
	return "book:" + id
}

func (c *BookCache) genKey(id string) string {
	return "book:" + id + ":gen"
}

// parseGeneration reads an MGET slot; a missing counter is generation 0.
func parseGeneration(v any) (int64, error) {
	switch s := v.(type) {
	case nil:
		return 0, nil
	case string:
		gen, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("book cache generation %q: %w", s, err)
		}
		return gen, nil
	default:
		return 0, fmt.Errorf("book cache generation: unexpected %T", v)
	}
}
