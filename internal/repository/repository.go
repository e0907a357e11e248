package repository

import (
	"context"
	"errors"
	"ladder_backend/internal/ladder"
	"ladder_backend/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrLoginTaken      = errors.New("login already taken")
	ErrSessionNotFound = errors.New("session not found")
)

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, id int, amount decimal.Decimal) error
}

// RoundRepository - история завершённых раундов
type RoundRepository interface {
	CreateRound(ctx context.Context, round *model.Round) error
	ListRounds(ctx context.Context, userID int, limit int) ([]model.Round, error)
}

// StatsRepository - агрегаты RTP в памяти процесса
type StatsRepository interface {
	UpdateState(bet, payout decimal.Decimal, reason ladder.FinishReason)
	HouseStats() model.HouseStats
}
