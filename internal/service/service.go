package service

import (
	"context"
	"errors"
	"ladder_backend/internal/ladder"
	"ladder_backend/internal/model"

	"github.com/shopspring/decimal"
)

var (
	ErrUnauthorized       = errors.New("user id not found")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// LadderService - игровые сессии игроков. ID игрока берётся из контекста запроса.
// Когда игра отказывает в действии, методы возвращают и ошибку, и состояние после отказа.
type LadderService interface {
	State(ctx context.Context) (*model.LadderState, error)
	Click(ctx context.Context, row, col int) (*model.ClickResult, error)
	Land(ctx context.Context, hop ladder.Hop) (*model.LadderState, error)
	Collect(ctx context.Context) (*model.LadderState, error)
	Settle(ctx context.Context) (*model.LadderState, error)

	SetBet(ctx context.Context, index int) (*model.LadderState, error)
	IncrementBet(ctx context.Context) (*model.LadderState, error)
	DecrementBet(ctx context.Context) (*model.LadderState, error)
	Deposit(ctx context.Context, amount decimal.Decimal) (*model.LadderState, error)
	Sound(ctx context.Context, settings model.SoundSettings) (*model.LadderState, error)

	History(ctx context.Context, limit int) ([]model.Round, error)
	Stats(ctx context.Context) model.HouseStats

	// Close останавливает таймеры всех сессий и сохраняет несохранённый журнал
	Close(ctx context.Context) error
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
