package github

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache stores analyses by username.
type Cache interface {
	Get(ctx context.Context, username string) (Analysis, bool)
	Set(ctx context.Context, username string, a Analysis)
}

// TieredCache keeps a short-lived in-process copy (L1) in front of Redis (L2).
// A nil Redis client disables L2.
type TieredCache struct {
	l1  sync.Map // key -> cacheEntry
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
	now func() time.Time
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewTieredCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *TieredCache {
	return &TieredCache{rdb: rdb, ttl: ttl, log: log, now: time.Now}
}

func cacheKey(username string) string {
	return "internhub:github:" + strings.ToLower(username)
}

func (c *TieredCache) Get(ctx context.Context, username string) (Analysis, bool) {
	key := cacheKey(username)
	if v, ok := c.l1.Load(key); ok {
		e := v.(cacheEntry)
		if c.now().Before(e.expiresAt) {
			var a Analysis
			if json.Unmarshal(e.data, &a) == nil {
				return a, true
			}
		}
		c.l1.Delete(key)
	}
	if c.rdb == nil {
		return Analysis{}, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Str("key", key).Msg("github cache: redis get failed")
		}
		return Analysis{}, false
	}
	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return Analysis{}, false
	}
	c.l1.Store(key, cacheEntry{data: data, expiresAt: c.now().Add(c.ttl)})
	return a, true
}

func (c *TieredCache) Set(ctx context.Context, username string, a Analysis) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	key := cacheKey(username)
	c.l1.Store(key, cacheEntry{data: data, expiresAt: c.now().Add(c.ttl)})
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("github cache: redis set failed")
	}
}
