package auth

import (
	"context"
	"errors"
	"ladder_backend/internal/model"
	"ladder_backend/internal/repository"
	"ladder_backend/internal/service"
	"ladder_backend/pkg/pass"
)

func (s *serv) Login(ctx context.Context, user *model.User) (*model.AuthData, error) {
	// Получение пользователя из бд по логину
	stored, err := s.userRepo.GetUserByLogin(ctx, user.Login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, service.ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(stored.Password, user.Password) {
		return nil, service.ErrInvalidCredentials
	}

	return s.openSession(ctx, stored)
}
