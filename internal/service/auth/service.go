package auth

import (
	"ladder_backend/internal/config"
	"ladder_backend/internal/repository"
	"ladder_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type serv struct {
	txManager    trm.Manager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	jwtConfig    config.JWTConfig
	startBalance decimal.Decimal
	log          *zap.Logger
}

// NewAuthService - регистрация и сессии. Новый игрок получает startBalance.
func NewAuthService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
	startBalance decimal.Decimal,
	log *zap.Logger,
) service.AuthService {
	return &serv{
		txManager:    txManager,
		userRepo:     userRepo,
		authRepo:     authRepo,
		jwtConfig:    jwtConfig,
		startBalance: startBalance,
		log:          log,
	}
}
