package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
// .env.local is loaded first so local dev matches production shape.
type Config struct {
	Port          string `env:"PORT" envDefault:"5050"`
	DatabaseURL   string `env:"DATABASE_URL"`
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	// Position-report throughput knobs.
	ReportRatePerSec float64 `env:"REPORT_RATE_LIMIT" envDefault:"2"`
	ReportBurst      int     `env:"REPORT_BURST" envDefault:"5"`
	SampleQueueSize  int     `env:"SAMPLE_QUEUE_SIZE" envDefault:"16"`
	ChannelBuffer    int     `env:"CHANNEL_BUFFER" envDefault:"32"`
}

func Load() (Config, error) {
	_ = godotenv.Load(".env.local")

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is empty")
	}
	return cfg, nil
}
