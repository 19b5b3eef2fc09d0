package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes the read side of user accounts for the admin panel.
// Registration and login live outside this service.
type UserUseCase interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]*model.User, error)
	Count(ctx context.Context) (int, error)
	// Grants returns the courses a user has unlocked.
	Grants(ctx context.Context, userID string) ([]*model.AccessGrant, error)
}

type userUC struct {
	users  repository.UserRepository
	grants repository.AccessGrantRepository
	log    *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, grants repository.AccessGrantRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, grants: grants, log: logger}
}

func (u *userUC) FindByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.FindByID(ctx, repository.NoTX, id)
}

func (u *userUC) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	return u.users.List(ctx, repository.NoTX, offset, limit)
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	return u.users.CountUsers(ctx, repository.NoTX)
}

func (u *userUC) Grants(ctx context.Context, userID string) ([]*model.AccessGrant, error) {
	if _, err := u.users.FindByID(ctx, repository.NoTX, userID); err != nil {
		return nil, err
	}
	return u.grants.ListByUser(ctx, repository.NoTX, userID)
}
