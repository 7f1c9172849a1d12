package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shopadmin/backend/internal/application/dashboard"
	"github.com/shopadmin/backend/internal/infrastructure/config"
)

// Factory creates dashboard caches based on configuration
type Factory struct {
	cacheConfig     config.CacheConfig
	redisConfig     config.RedisConfig
	logger          *zap.Logger
	allowMemoryFall bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowMemoryFall = allow
	}
}

// NewFactory creates a new cache factory
func NewFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cacheConfig:     cacheCfg,
		redisConfig:     redisCfg,
		logger:          zap.NewNop(),
		allowMemoryFall: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create builds the cache named by cache.backend. With the redis backend,
// a connection failure falls back to the in-memory cache unless fallback
// is disabled.
func (f *Factory) Create() (dashboard.Cache, error) {
	switch f.cacheConfig.Backend {
	case "memory":
		return NewMemoryCache(), nil
	case "redis":
		cache, err := NewRedisCache(f.redisConfig)
		if err == nil {
			f.logger.Info("using Redis dashboard cache")
			return cache, nil
		}
		if !f.allowMemoryFall {
			return nil, fmt.Errorf("Redis required for dashboard cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory dashboard cache. "+
			"Cached aggregates will not be shared across instances.",
			zap.Error(err),
		)
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", f.cacheConfig.Backend)
	}
}
