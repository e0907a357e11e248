package env

import (
	"fmt"
	"ladder_backend/internal/config"
	"time"

	"github.com/caarlos0/env/v11"
)

type jwtConfig struct {
	SecretKey  string        `env:"ACCESS_TOKEN,required,notEmpty"`
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_DURATION" envDefault:"15m"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_DURATION" envDefault:"720h"`
}

func NewJWTConfig() (config.JWTConfig, error) {
	var cfg jwtConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("jwt config: %w", err)
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("jwt config: token durations must be positive")
	}

	return &cfg, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.SecretKey)
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.RefreshTTL
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.AccessTTL
}
