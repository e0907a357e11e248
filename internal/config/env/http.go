package env

import (
	"fmt"
	"ladder_backend/internal/config"
	"time"

	"github.com/caarlos0/env/v11"
)

type httpConfig struct {
	Addr     string        `env:"HTTP_ADDR" envDefault:":8080"`
	Shutdown time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	var cfg httpConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("http config: %w", err)
	}

	return &cfg, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.Addr
}

func (cfg *httpConfig) ShutdownTimeout() time.Duration {
	return cfg.Shutdown
}
