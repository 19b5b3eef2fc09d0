package repository

import (
	"context"
	"time"

	"israa-academy/internal/domain/model"
)

// ActivationCodeRepository is the port for managing activation codes.
type ActivationCodeRepository interface {
	// Save inserts a freshly issued code.
	Save(ctx context.Context, tx Tx, code *model.ActivationCode) error
	// FindByCode finds a code by its normalized value regardless of status.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.ActivationCode, error)
	// MarkRedeemed performs the unused -> redeemed transition as a single
	// conditional update. It returns false when the code was not in the
	// unused state (already redeemed, revoked, or unknown), in which case
	// the caller re-reads to classify the outcome.
	MarkRedeemed(ctx context.Context, tx Tx, code, userID string, at time.Time) (bool, error)
	// MarkRevoked performs the unused -> revoked transition, same contract
	// as MarkRedeemed.
	MarkRevoked(ctx context.Context, tx Tx, code string, at time.Time) (bool, error)
	// List returns codes filtered by status ("" for all), newest first.
	List(ctx context.Context, tx Tx, status string, offset, limit int) ([]*model.ActivationCode, error)
	// CountByStatus returns code counts keyed by status.
	CountByStatus(ctx context.Context, tx Tx) (map[string]int, error)
}
