package auth

import (
	"context"
	"errors"
	"ladder_backend/internal/model"
	"ladder_backend/internal/repository"
	"ladder_backend/internal/service"
	"ladder_backend/pkg/token"
	"time"
)

func (s *serv) Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error) {
	// Получение сессии из хранилища по sessionID
	session, err := s.authRepo.GetSession(ctx, data.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", service.ErrInvalidSession
		}
		return "", err
	}

	if time.Now().After(session.ExpiresAt) {
		return "", service.ErrInvalidSession
	}

	// Верификация переданного refresh токена с хэшем из хранилища
	if !token.VerifyRefreshToken(data.RefreshToken, session.RefreshToken) {
		return "", service.ErrInvalidSession
	}

	user, err := s.authRepo.GetUserBySessionID(ctx, data.SessionID)
	if err != nil {
		return "", err
	}

	return token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
}

func (s *serv) Logout(ctx context.Context, sessionID string) error {
	return s.authRepo.DeleteSession(ctx, sessionID)
}
