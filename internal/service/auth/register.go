package auth

import (
	"context"
	"ladder_backend/internal/model"
	"ladder_backend/pkg/pass"
	"ladder_backend/pkg/token"
	"time"

	"go.uber.org/zap"
)

func (s *serv) Register(ctx context.Context, user *model.User) (*model.AuthData, error) {
	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash
	user.Balance = s.startBalance

	var data *model.AuthData

	// Пользователь и его первая сессия создаются вместе
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		user.ID, err = s.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}

		data, err = s.openSession(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Int("user_id", user.ID), zap.String("login", user.Login))
	return data, nil
}

// openSession создает refresh-сессию и выдает access токен
func (s *serv) openSession(ctx context.Context, user *model.User) (*model.AuthData, error) {
	sessionID := token.NewSessionID()

	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:           sessionID,
			UserID:       user.ID,
			RefreshToken: token.HashRefreshToken(refreshToken),
			ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenDuration()), // Время жизни refresh токена из конфигурации
		})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}
