package repository

import (
	"context"

	"israa-academy/internal/domain/model"
)

// CourseRepository is the port for the course catalog.
type CourseRepository interface {
	// Save creates or updates a course.
	Save(ctx context.Context, tx Tx, course *model.Course) error
	// Delete removes a course.
	Delete(ctx context.Context, tx Tx, id string) error
	// FindByID returns a course by ID, or ErrNotFound.
	FindByID(ctx context.Context, tx Tx, id string) (*model.Course, error)
	// FindBySlug returns a course by slug, or ErrNotFound.
	FindBySlug(ctx context.Context, tx Tx, slug string) (*model.Course, error)
	// ListAll returns every course, newest first.
	ListAll(ctx context.Context, tx Tx) ([]*model.Course, error)
	// ListPublished returns only published courses.
	ListPublished(ctx context.Context, tx Tx) ([]*model.Course, error)
}
