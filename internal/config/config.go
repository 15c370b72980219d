package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything injected from the environment. The backend
// credential lives here and nowhere else — client code never hard-codes it.
type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/profile.db"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	APIBaseURL     string        `env:"API_BASE_URL,required"`
	APIToken       string        `env:"API_TOKEN,required"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	DeviceUsername string        `env:"DEVICE_USERNAME,required"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
