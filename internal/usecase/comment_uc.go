package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

// Compile-time check
var _ CommentUseCase = (*commentUC)(nil)

// CommentUseCase covers comment moderation for the admin panel.
type CommentUseCase interface {
	ListByCourse(ctx context.Context, courseID string, offset, limit int) ([]*model.Comment, error)
	Delete(ctx context.Context, id string) error
	ResetLikes(ctx context.Context, id string) error
}

type commentUC struct {
	comments repository.CommentRepository
	courses  repository.CourseRepository
	log      *zerolog.Logger
}

func NewCommentUseCase(comments repository.CommentRepository, courses repository.CourseRepository, logger *zerolog.Logger) *commentUC {
	return &commentUC{comments: comments, courses: courses, log: logger}
}

func (u *commentUC) ListByCourse(ctx context.Context, courseID string, offset, limit int) ([]*model.Comment, error) {
	if _, err := u.courses.FindByID(ctx, repository.NoTX, courseID); err != nil {
		return nil, err
	}
	return u.comments.ListByCourse(ctx, repository.NoTX, courseID, offset, limit)
}

func (u *commentUC) Delete(ctx context.Context, id string) error {
	if _, err := u.comments.FindByID(ctx, repository.NoTX, id); err != nil {
		return err
	}
	u.log.Info().Str("comment_id", id).Msg("comment deleted by admin")
	return u.comments.Delete(ctx, repository.NoTX, id)
}

func (u *commentUC) ResetLikes(ctx context.Context, id string) error {
	if _, err := u.comments.FindByID(ctx, repository.NoTX, id); err != nil {
		return err
	}
	return u.comments.ResetLikes(ctx, repository.NoTX, id)
}
