package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

var _ repository.CommentRepository = (*commentRepo)(nil)

type commentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) repository.CommentRepository {
	return &commentRepo{pool: pool}
}

func (r *commentRepo) Save(ctx context.Context, tx repository.Tx, comment *model.Comment) error {
	const q = `
INSERT INTO comments (id, course_id, user_id, body, likes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  body = EXCLUDED.body,
  likes = EXCLUDED.likes;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		comment.ID, comment.CourseID, comment.UserID, comment.Body, comment.Likes, comment.CreatedAt,
	)
	return err
}

func (r *commentRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM comments WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *commentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Comment, error) {
	const q = `SELECT id, course_id, user_id, body, likes, created_at FROM comments WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var c model.Comment
	if err := row.Scan(&c.ID, &c.CourseID, &c.UserID, &c.Body, &c.Likes, &c.CreatedAt); err != nil {
		return nil, mapScanError(err)
	}
	return &c, nil
}

func (r *commentRepo) ListByCourse(ctx context.Context, tx repository.Tx, courseID string, offset, limit int) ([]*model.Comment, error) {
	const q = `
SELECT id, course_id, user_id, body, likes, created_at
  FROM comments
 WHERE course_id = $1
 ORDER BY created_at DESC
OFFSET $2 LIMIT $3;
`
	rows, err := queryRows(ctx, r.pool, tx, q, courseID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.CourseID, &c.UserID, &c.Body, &c.Likes, &c.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *commentRepo) ResetLikes(ctx context.Context, tx repository.Tx, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `UPDATE comments SET likes = 0 WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *commentRepo) CountComments(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM comments;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
