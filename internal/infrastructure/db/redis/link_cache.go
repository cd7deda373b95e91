package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheTTL = time.Hour

// LinkCache is a read-through cache mapping a minified URL to its canonical
// URL for the redirect hot path. Entries expire after cacheTTL, so the
// redirect counter in the document store stays authoritative and a deleted
// link disappears within the TTL window. Cache failures only cost a
// document read; they are logged, never propagated.
//
// Key format: link:<minified_url>
type LinkCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewLinkCache wraps the given Redis client.
func NewLinkCache(client *redis.Client, log zerolog.Logger) *LinkCache {
	return &LinkCache{client: client, log: log}
}

// Get returns the cached canonical URL for minifiedURL, if present.
func (c *LinkCache) Get(ctx context.Context, minifiedURL string) (string, bool) {
	target, err := c.client.Get(ctx, c.key(minifiedURL)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("minified_url", minifiedURL).Msg("link cache read failed")
		}
		return "", false
	}
	return target, true
}

// Set records the canonical URL for minifiedURL (expires after cacheTTL).
func (c *LinkCache) Set(ctx context.Context, minifiedURL, url string) {
	if err := c.client.Set(ctx, c.key(minifiedURL), url, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("minified_url", minifiedURL).Msg("link cache write failed")
	}
}

func (c *LinkCache) key(minifiedURL string) string {
	return "link:" + minifiedURL
}
