package env

import (
	"fmt"
	"ladder_backend/internal/config"

	"github.com/caarlos0/env/v11"
)

type logConfig struct {
	LevelName string `env:"LOG_LEVEL" envDefault:"info"`
	Dev       bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

func NewLogConfig() (config.LogConfig, error) {
	var cfg logConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("log config: %w", err)
	}

	return &cfg, nil
}

func (cfg *logConfig) Level() string {
	return cfg.LevelName
}

func (cfg *logConfig) Development() bool {
	return cfg.Dev
}
