package providers

import (
	"github.com/samber/do/v2"

	"github.com/loyerparis/loyer-server/internal/cache"
	"github.com/loyerparis/loyer-server/internal/config"
	"github.com/loyerparis/loyer-server/internal/logger"
	"github.com/loyerparis/loyer-server/internal/ratelimit"
)

// CacheHandle wraps the prediction cache with Shutdownable.
// Cache is nil when caching is disabled.
type CacheHandle struct {
	*cache.Cache
}

// Shutdown implements do.Shutdownable.
func (h *CacheHandle) Shutdown() error {
	if h.Cache == nil {
		return nil
	}
	return h.Close()
}

// ProvideCache provides the in-memory prediction cache.
func ProvideCache(i do.Injector) (*CacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Cache.Enabled {
		log.Info("Prediction cache disabled by configuration")
		return &CacheHandle{}, nil
	}

	c, err := cache.Open(cache.Options{
		TTL:        cfg.Cache.TTL,
		MaxEntries: cfg.Cache.MaxEntries,
		Logger:     log.Logger,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Prediction cache ready", "ttl", c.TTL(), "max_entries", c.MaxEntries())
	return &CacheHandle{Cache: c}, nil
}

// RateLimiterHandle wraps the per-client limiter with Shutdownable.
// Limiter is nil when rate limiting is disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter == nil {
		return nil
	}
	return h.Limiter.Shutdown()
}

// ProvideRateLimiter provides the per-client request limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	log.Info("Rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	return &RateLimiterHandle{Limiter: ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)}, nil
}
