package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

var _ repository.CourseRepository = (*courseRepo)(nil)

type courseRepo struct {
	pool *pgxpool.Pool
}

func NewCourseRepo(pool *pgxpool.Pool) repository.CourseRepository {
	return &courseRepo{pool: pool}
}

func (r *courseRepo) Save(ctx context.Context, tx repository.Tx, course *model.Course) error {
	const q = `
INSERT INTO courses (id, slug, title, title_ar, description, description_ar, price_iqd, level, published, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
  slug = EXCLUDED.slug,
  title = EXCLUDED.title,
  title_ar = EXCLUDED.title_ar,
  description = EXCLUDED.description,
  description_ar = EXCLUDED.description_ar,
  price_iqd = EXCLUDED.price_iqd,
  level = EXCLUDED.level,
  published = EXCLUDED.published;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		course.ID, course.Slug, course.Title, course.TitleAR, course.Description, course.DescriptionAR,
		course.PriceIQD, course.Level, course.Published, course.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM courses WHERE id = $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const courseColumns = `id, slug, title, title_ar, description, description_ar, price_iqd, level, published, created_at`

func scanCourse(row interface {
	Scan(dest ...interface{}) error
}) (*model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID, &c.Slug, &c.Title, &c.TitleAR, &c.Description, &c.DescriptionAR,
		&c.PriceIQD, &c.Level, &c.Published, &c.CreatedAt,
	)
	if err != nil {
		return nil, mapScanError(err)
	}
	return &c, nil
}

func (r *courseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+courseColumns+` FROM courses WHERE id = $1;`, id)
	if err != nil {
		return nil, err
	}
	return scanCourse(row)
}

func (r *courseRepo) FindBySlug(ctx context.Context, tx repository.Tx, slug string) (*model.Course, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+courseColumns+` FROM courses WHERE slug = $1;`, slug)
	if err != nil {
		return nil, err
	}
	return scanCourse(row)
}

func (r *courseRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	return r.list(ctx, tx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC;`)
}

func (r *courseRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	return r.list(ctx, tx, `SELECT `+courseColumns+` FROM courses WHERE published ORDER BY created_at DESC;`)
}

func (r *courseRepo) list(ctx context.Context, tx repository.Tx, q string) ([]*model.Course, error) {
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
