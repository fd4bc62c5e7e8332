package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,       default=8080"`
	Env        string        `env:"ENV,        default=development"`
	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel   string        `env:"LOG_LEVEL,  default=info"`
	CORSOrigin string        `env:"CORS_ORIGIN, default=*"`

	Cookie   CookieConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

// CookieConfig controls the flags on the optional token cookie set at login.
type CookieConfig struct {
	Secure   bool   `env:"COOKIE_SECURE,   default=false"`
	SameSite string `env:"COOKIE_SAMESITE, default=lax"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=emergency_directory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ThrottleConfig bounds failed logins per username.
type ThrottleConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	Window      time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
