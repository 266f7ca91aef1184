package server

import (
	"context"
	"fmt"

	"github.com/matzehuels/gatestack/pkg/cache"
	"github.com/matzehuels/gatestack/pkg/share"
)

// newStore builds the share store named by cfg.StoreBackend.
func newStore(ctx context.Context, cfg Config) (share.Store, error) {
	switch cfg.StoreBackend {
	case StoreMemory:
		return share.NewMemoryStore(), nil
	case StoreFile:
		return share.NewFileStore(cfg.StoreDir)
	case StoreRedis:
		return share.NewRedisStore(ctx, share.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case StoreMongo:
		return share.NewMongoStore(ctx, share.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// newCache builds the artifact cache. An empty CacheDir disables caching.
func newCache(cfg Config) (cache.Cache, error) {
	if cfg.CacheDir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cfg.CacheDir)
}
