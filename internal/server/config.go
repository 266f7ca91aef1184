package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backend names accepted by Config.StoreBackend.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config holds server settings, loaded from GATESTACK_* environment
// variables with defaults suitable for local development.
type Config struct {
	Addr string `env:"GATESTACK_ADDR" envDefault:":8080"`

	// StoreBackend selects where published circuits live: memory, file,
	// redis, or mongo.
	StoreBackend string `env:"GATESTACK_STORE" envDefault:"memory"`
	StoreDir     string `env:"GATESTACK_STORE_DIR"`

	RedisAddr     string `env:"GATESTACK_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"GATESTACK_REDIS_PASSWORD"`
	RedisDB       int    `env:"GATESTACK_REDIS_DB" envDefault:"0"`

	MongoURI        string `env:"GATESTACK_MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string `env:"GATESTACK_MONGO_DATABASE"`
	MongoCollection string `env:"GATESTACK_MONGO_COLLECTION"`

	// CacheDir holds rendered artifacts. Empty disables the cache.
	CacheDir string `env:"GATESTACK_CACHE_DIR"`

	// ShareTTL bounds how long published circuits stay retrievable.
	// Zero publishes without expiration.
	ShareTTL time.Duration `env:"GATESTACK_SHARE_TTL" envDefault:"720h"`

	// MaxBodyBytes caps request bodies on the render and publish routes.
	MaxBodyBytes int64 `env:"GATESTACK_MAX_BODY_BYTES" envDefault:"1048576"`

	ReadTimeout     time.Duration `env:"GATESTACK_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"GATESTACK_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"GATESTACK_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StoreBackend {
	case StoreMemory, StoreFile, StoreRedis, StoreMongo:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}
