package env

import (
	"fmt"
	"ladder_backend/internal/config"

	"github.com/caarlos0/env/v11"
)

type pgConfig struct {
	Dsn string `env:"PG_DSN,required,notEmpty"`
}

func NewPGConfig() (config.PGConfig, error) {
	var cfg pgConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("pg config: %w", err)
	}

	return &cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.Dsn
}
