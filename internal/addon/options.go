package addon

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/dbytex91/stremthru-search/internal/stremthru"
)

func WithID(id string) Option {
	return func(a *Addon) {
		a.id = id
	}
}

func WithName(name string) Option {
	return func(a *Addon) {
		a.name = name
	}
}

func WithVersion(version string) Option {
	return func(a *Addon) {
		a.version = version
	}
}

func WithStremThru(baseURL string, timeout time.Duration) Option {
	return func(a *Addon) {
		a.stremThru = stremthru.New(baseURL, timeout)
	}
}

// WithCache keeps successful upstream responses for ttlSeconds. A ttl of 0 disables the cache.
func WithCache(sizeBytes int, ttlSeconds int) Option {
	return func(a *Addon) {
		a.cacheTTL = ttlSeconds
		if ttlSeconds <= 0 {
			a.cache = nil
			return
		}
		a.cache = freecache.NewCache(sizeBytes)
	}
}

func WithMetrics(enabled bool) Option {
	return func(a *Addon) {
		a.metricsEnabled = enabled
	}
}
