package config

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
}

// BackendConfig locates the ConectaPG REST service this portal consumes.
type BackendConfig struct {
	BaseURL        string `env:"BACKEND_BASE_URL, default=http://localhost:3000"`
	TimeoutSeconds int    `env:"BACKEND_TIMEOUT_SECONDS, default=15"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SessionConfig controls cookie and at-rest session handling. SealKey, when
// set, must be 64 hex characters (a 32-byte XChaCha20-Poly1305 key); empty
// disables sealing, for development only.
type SessionConfig struct {
	CookieName   string `env:"SESSION_COOKIE,   default=conectapg_sid"`
	TTLDays      int    `env:"SESSION_TTL_DAYS, default=30"`
	SealKey      string `env:"SESSION_SEAL_KEY"`
	CookieSecure bool   `env:"SESSION_COOKIE_SECURE, default=false"`
}

// Load reads configuration from environment variables. In development a
// local .env file is loaded first, if present.
func Load() *Config {
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
