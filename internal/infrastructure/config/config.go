// Package config loads process configuration from environment variables.
// Both services share one schema; each main supplies its own default port.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs bearer credentials. The default matches the legacy
	// deployments; override it anywhere that matters.
	JWTSecret string        `env:"JWT_SECRET, default=111111"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=2h"`

	// PublicBaseURL is the prefix under which minified URLs and user refs
	// are minted. Defaults to http://localhost:<port>.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// Bootstrap SuperAdmin overrides; empty values keep the well-known
	// defaults from the auth package.
	SuperAdminID    string `env:"SUPERADMIN_ID"`
	SuperAdminEmail string `env:"SUPERADMIN_EMAIL"`
	SuperAdminToken string `env:"SUPERADMIN_TOKEN"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=local"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// defaultPort is applied when PORT is unset (3000 for the user service,
// 5000 for the URL service).
func Load(ctx context.Context, defaultPort string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	return &cfg, nil
}
