package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"israa-academy/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	Totals(ctx context.Context) (users int, codesByStatus map[string]int, grantsByCourse map[string]int, err error)
}

type statsUC struct {
	users  repository.UserRepository
	codes  repository.ActivationCodeRepository
	grants repository.AccessGrantRepository

	log *zerolog.Logger
}

func NewStatsUseCase(users repository.UserRepository, codes repository.ActivationCodeRepository, grants repository.AccessGrantRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{users: users, codes: codes, grants: grants, log: logger}
}

func (s *statsUC) Totals(ctx context.Context) (int, map[string]int, map[string]int, error) {
	users, err := s.users.CountUsers(ctx, repository.NoTX)
	if err != nil {
		return 0, nil, nil, err
	}
	codes, err := s.codes.CountByStatus(ctx, repository.NoTX)
	if err != nil {
		return 0, nil, nil, err
	}
	grants, err := s.grants.CountByCourse(ctx, repository.NoTX)
	if err != nil {
		return 0, nil, nil, err
	}
	return users, codes, grants, nil
}
