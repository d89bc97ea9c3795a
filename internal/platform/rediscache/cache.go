// Package rediscache stores rendered graph exports per document.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Roblokonha/StudyVault/internal/platform/envutil"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

// Cache holds rendered exports keyed by document, format and generation. Invalidate
// advances a document's generation, so a value rendered from data read before the
// advance is stored under a retired generation and never served. Implementations
// must be safe for concurrent use.
type Cache interface {
	Generation(ctx context.Context, docID string) (int64, error)
	Get(ctx context.Context, docID, format string, gen int64) ([]byte, bool, error)
	Set(ctx context.Context, docID, format string, gen int64, value []byte) error
	Invalidate(ctx context.Context, docID string) error
	Close() error
}

type redisCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewFromEnv connects to REDIS_ADDR. Without it the returned cache stores nothing.
func NewFromEnv(log *logger.Logger) (Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := envutil.String("REDIS_ADDR", "", log)
	if addr == "" {
		log.Info("REDIS_ADDR not set; graph export cache disabled")
		return Nop(), nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.String("REDIS_PASSWORD", "", nil),
		DB:          envutil.Int("REDIS_DB", 0),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(rdb, log, envutil.String("REDIS_KEY_PREFIX", "studyvault", log), envutil.Seconds("GRAPH_CACHE_TTL_SECONDS", 10*time.Minute)), nil
}

// New wraps an existing client.
func New(rdb *goredis.Client, log *logger.Logger, prefix string, ttl time.Duration) Cache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "studyvault"
	}
	return &redisCache{
		log:    log.With("service", "RedisGraphCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *redisCache) key(docID, format string, gen int64) string {
	return fmt.Sprintf("%s:graph:%s:%s:%d", c.prefix, docID, format, gen)
}

func (c *redisCache) genKey(docID string) string {
	return c.prefix + ":graph:" + docID + ":gen"
}

func (c *redisCache) Generation(ctx context.Context, docID string) (int64, error) {
	n, err := c.rdb.Get(ctx, c.genKey(docID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *redisCache) Get(ctx context.Context, docID, format string, gen int64) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(docID, format, gen)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *redisCache) Set(ctx context.Context, docID, format string, gen int64, value []byte) error {
	return c.rdb.Set(ctx, c.key(docID, format, gen), value, c.ttl).Err()
}

// Invalidate retires the current generation. Entries stored under it expire with the TTL.
func (c *redisCache) Invalidate(ctx context.Context, docID string) error {
	if err := c.rdb.Incr(ctx, c.genKey(docID)).Err(); err != nil {
		c.log.Warn("graph cache invalidate failed", "document_id", docID, "error", err)
		return err
	}
	return nil
}

func (c *redisCache) Close() error { return c.rdb.Close() }

type nopCache struct{}

// Nop returns a cache that never hits.
func Nop() Cache { return nopCache{} }

func (nopCache) Generation(context.Context, string) (int64, error) { return 0, nil }
func (nopCache) Get(context.Context, string, string, int64) ([]byte, bool, error) {
	return nil, false, nil
}
func (nopCache) Set(context.Context, string, string, int64, []byte) error { return nil }
func (nopCache) Invalidate(context.Context, string) error                 { return nil }
func (nopCache) Close() error                                             { return nil }
