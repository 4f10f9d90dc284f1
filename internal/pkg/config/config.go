package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CookieSecure marks the client id cookie Secure. Enable behind TLS.
	CookieSecure bool `env:"COOKIE_SECURE, default=false"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	Audit   AuditConfig
}

// BackendConfig points at the rental REST API. A zero Timeout leaves
// request deadlines to the transport.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8080/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT"`
}

// SessionConfig controls the token store. StoreKey is a 64 char hex
// secretbox key; empty stores values unsealed. ExpiryCheck drops persisted
// tokens whose exp claim is in the past, and ExpiryFailClosed also drops
// tokens whose exp cannot be read.
type SessionConfig struct {
	StoreKey         string        `env:"SESSION_STORE_KEY"`
	TTL              time.Duration `env:"SESSION_TTL,              default=168h"`
	IdleTTL          time.Duration `env:"SESSION_IDLE_TTL,         default=30m"`
	ExpiryCheck      bool          `env:"TOKEN_EXPIRY_CHECK,       default=true"`
	ExpiryFailClosed bool          `env:"TOKEN_EXPIRY_FAIL_CLOSED, default=false"`
}

// RedisConfig selects the token store. Empty Addr keeps sessions in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MongoConfig selects the audit store. Empty URI disables auditing.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string        `env:"MONGO_DB, default=loccar_web"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
