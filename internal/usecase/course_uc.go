package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

// Compile-time check
var _ CourseUseCase = (*courseUC)(nil)

// CourseUseCase manages the course catalog for the admin panel.
type CourseUseCase interface {
	Create(ctx context.Context, slug, title, titleAR, description, descriptionAR string, priceIQD int64, level string) (*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Publish(ctx context.Context, id string, published bool) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.Course, error)
	GetBySlug(ctx context.Context, slug string) (*model.Course, error)
	List(ctx context.Context) ([]*model.Course, error)
}

type courseUC struct {
	repo repository.CourseRepository
	log  *zerolog.Logger
}

func NewCourseUseCase(repo repository.CourseRepository, logger *zerolog.Logger) *courseUC {
	return &courseUC{repo: repo, log: logger}
}

func (u *courseUC) Create(ctx context.Context, slug, title, titleAR, description, descriptionAR string, priceIQD int64, level string) (*model.Course, error) {
	course, err := model.NewCourse(slug, title, titleAR, priceIQD, model.CourseLevel(level))
	if err != nil {
		return nil, err
	}
	course.Description = description
	course.DescriptionAR = descriptionAR

	if existing, err := u.repo.FindBySlug(ctx, repository.NoTX, slug); err == nil && !existing.IsZero() {
		return nil, domain.ErrAlreadyExists
	}
	if err := u.repo.Save(ctx, repository.NoTX, course); err != nil {
		return nil, err
	}
	u.log.Info().Str("slug", course.Slug).Msg("course created")
	return course, nil
}

func (u *courseUC) Update(ctx context.Context, course *model.Course) error {
	if course.IsZero() {
		return domain.ErrInvalidArgument
	}
	if _, err := u.repo.FindByID(ctx, repository.NoTX, course.ID); err != nil {
		return err
	}
	return u.repo.Save(ctx, repository.NoTX, course)
}

func (u *courseUC) Publish(ctx context.Context, id string, published bool) error {
	course, err := u.repo.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return err
	}
	course.Published = published
	return u.repo.Save(ctx, repository.NoTX, course)
}

func (u *courseUC) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, repository.NoTX, id)
}

func (u *courseUC) Get(ctx context.Context, id string) (*model.Course, error) {
	return u.repo.FindByID(ctx, repository.NoTX, id)
}

func (u *courseUC) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	return u.repo.FindBySlug(ctx, repository.NoTX, slug)
}

func (u *courseUC) List(ctx context.Context) ([]*model.Course, error) {
	return u.repo.ListAll(ctx, repository.NoTX)
}
