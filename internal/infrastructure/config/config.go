package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Login   LoginConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// TTL is the session lifetime; RenewWithin is how close to expiry a
	// validation triggers a renewal.
	TTL          time.Duration `env:"SESSION_TTL,          default=720h"`
	RenewWithin  time.Duration `env:"SESSION_RENEW_WITHIN, default=360h"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`
}

type LoginConfig struct {
	Window      time.Duration `env:"LOGIN_WINDOW,       default=10m"`
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
}

type MongoConfig struct {
	// URI is optional: when empty the portal runs on in-memory stores. In
	// production that degraded mode is refused at startup.
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=agency_portal"`
}

type RedisConfig struct {
	// Addr is optional: when empty sessions and rate limiting stay
	// in-process, which is only sound for a single-process deployment.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// IsProduction reports whether the runtime-mode flag is set to production,
// which tightens the Secure cookie attribute and the missing-database check.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
