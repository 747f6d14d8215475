package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/bingo.db"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	RedisURL       string        `env:"REDIS_URL"`
	AdminTokenHash string        `env:"ADMIN_TOKEN_HASH"`
	DrawInterval   time.Duration `env:"DRAW_INTERVAL" envDefault:"0s"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SeedDemo       bool          `env:"SEED_DEMO" envDefault:"true"`
}

// Load reads the configuration from the environment. Variables from the
// given dotenv files are applied first without overriding the process
// environment; missing files are skipped.
func Load(dotenv ...string) (*Config, error) {
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DrawInterval < 0 {
		return nil, fmt.Errorf("DRAW_INTERVAL must not be negative, got %s", cfg.DrawInterval)
	}
	return &cfg, nil
}
