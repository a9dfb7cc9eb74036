package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings, read from the environment with an
// optional .env file on top
type Config struct {
	Addr    string `env:"SAS_ADDR" envDefault:":8080"`
	Storage string `env:"SAS_STORAGE" envDefault:"memory"`
	DBPath  string `env:"SAS_DB_PATH" envDefault:"assassins.db"`
	BaseURL string `env:"SAS_BASE_URL" envDefault:"http://localhost:8080"`
	Debug   bool   `env:"SAS_DEBUG" envDefault:"false"`
}

// Load reads the configuration. A missing .env file is fine; the process
// environment always wins.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Storage != "memory" && cfg.Storage != "sqlite" {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	return cfg, nil
}
