package config

import (
	"ladder_backend/internal/ladder"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
	ShutdownTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type LogConfig interface {
	Level() string
	Development() bool
}

// LadderConfig - таблицы выплат и тайминги игры
type LadderConfig interface {
	Game() ladder.Config
	// StatsWindow - размер скользящего окна для RTP
	StatsWindow() int
	// SessionIdle - через сколько простоя игра игрока выгружается из памяти, 0 - никогда
	SessionIdle() time.Duration
}
