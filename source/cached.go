package source

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTTL is the time definitions are kept by a Cached source
	// unless another one is given with WithTTL
	DefaultTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

type cached struct {
	src   Source
	cache *cache.Cache
}

type cacheConfig struct {
	ttl time.Duration
}

// CacheOption configures a Cached source
type CacheOption func(*cacheConfig)

// WithTTL sets the time retrieved definitions are kept for
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *cacheConfig) {
		c.ttl = ttl
	}
}

/*
Cached wraps a source keeping the definitions retrieved from it in
memory for a while, so that repeated lookups of the same id do not hit
the wrapped source. Lookups that fail are not cached.
*/
func Cached(src Source, opts ...CacheOption) Source {
	config := &cacheConfig{ttl: DefaultTTL}
	for _, o := range opts {
		o(config)
	}
	return &cached{src: src, cache: cache.New(config.ttl, cleanupInterval)}
}

func (c *cached) Get(ctx context.Context, id string) ([]byte, error) {
	if d, ok := c.cache.Get(id); ok {
		log.Debug().Str("id", id).Msg("definition cache hit")
		return d.([]byte), nil
	}
	d, err := c.src.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set(id, d, cache.DefaultExpiration)
	return d, nil
}

func (c *cached) Close(ctx context.Context) error {
	c.cache.Flush()
	return c.src.Close(ctx)
}
