package repository

import (
	"context"

	"israa-academy/internal/domain/model"
)

// AccessGrantRepository is the port for course access grants.
type AccessGrantRepository interface {
	// Insert creates the grant unless an equivalent (user, course) grant
	// already exists. Returns false when the insert was a no-op.
	Insert(ctx context.Context, tx Tx, grant *model.AccessGrant) (bool, error)
	// FindByUserAndCourse returns the grant for a pair, or ErrNotFound.
	FindByUserAndCourse(ctx context.Context, tx Tx, userID, courseID string) (*model.AccessGrant, error)
	// ListByUser returns all grants held by a user.
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.AccessGrant, error)
	// CountByCourse returns grant counts keyed by course ID.
	CountByCourse(ctx context.Context, tx Tx) (map[string]int, error)
}
