package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=5000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	BodyLimit string `env:"BODY_LIMIT, default=1M"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_management"`
}

// RedisConfig holds the rate-limit backend settings. An empty Addr means
// "no Redis": limiters fall back to in-process buckets.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	GeneralMax int64         `env:"RATE_LIMIT_GENERAL_MAX, default=100"`
	CreateMax  int64         `env:"RATE_LIMIT_CREATE_MAX,  default=5"`
	Window     time.Duration `env:"RATE_LIMIT_WINDOW,      default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsDevelopment reports whether the process runs in development mode, which
// unlocks the swagger UI and verbose error bodies.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
