package repository

import (
	"context"

	"israa-academy/internal/domain/model"
)

// CommentRepository is the port for course comments.
type CommentRepository interface {
	Save(ctx context.Context, tx Tx, comment *model.Comment) error
	Delete(ctx context.Context, tx Tx, id string) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Comment, error)
	// ListByCourse returns a page of comments for a course, newest first.
	ListByCourse(ctx context.Context, tx Tx, courseID string, offset, limit int) ([]*model.Comment, error)
	// ResetLikes zeroes the like counter on a comment.
	ResetLikes(ctx context.Context, tx Tx, id string) error
	CountComments(ctx context.Context, tx Tx) (int, error)
}
