package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Round - завершённый раунд игрока
type Round struct {
	ID         uuid.UUID
	UserID     int
	Run        uint64
	Bet        decimal.Decimal
	Level      int
	Payout     decimal.Decimal
	Reason     string
	Seed       uint32
	StartedAt  time.Time
	FinishedAt time.Time
}

// HouseStats - сводка по всем раундам с момента запуска
type HouseStats struct {
	Rounds      int64
	TotalBet    decimal.Decimal
	TotalPayout decimal.Decimal
	RTP         decimal.Decimal // процент
	WindowRTP   decimal.Decimal // процент по последним WindowSize раундам
	WindowSize  int
	Collected   int64
	Dropped     int64
	Cleared     int64
}
