package service

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	RemoveUser(ctx context.Context, userID int64) error
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, exists, err := s.u.GetByID(ctx, id)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if !exists {
		return nil, apperr.ErrNotFound
	}

	return user, nil
}

func (s *userService) RemoveUser(ctx context.Context, userID int64) error {
	_, exists, err := s.u.GetByID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	if !exists {
		return apperr.ErrNotFound
	}

	return s.u.Remove(ctx, userID)
}
