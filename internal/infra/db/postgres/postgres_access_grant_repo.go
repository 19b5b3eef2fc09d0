package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

var _ repository.AccessGrantRepository = (*accessGrantRepo)(nil)

type accessGrantRepo struct {
	pool *pgxpool.Pool
}

func NewAccessGrantRepo(pool *pgxpool.Pool) repository.AccessGrantRepository {
	return &accessGrantRepo{pool: pool}
}

// Insert creates the grant unless the (user, course) pair already holds one.
// ON CONFLICT DO NOTHING keeps redemption idempotent without a prior read.
func (r *accessGrantRepo) Insert(ctx context.Context, tx repository.Tx, grant *model.AccessGrant) (bool, error) {
	const q = `
INSERT INTO access_grants (id, user_id, course_id, granted_at, grant_source)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, course_id) DO NOTHING;
`
	tag, err := execSQL(ctx, r.pool, tx, q,
		grant.ID, grant.UserID, grant.CourseID, grant.GrantedAt, grant.GrantSource,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *accessGrantRepo) FindByUserAndCourse(ctx context.Context, tx repository.Tx, userID, courseID string) (*model.AccessGrant, error) {
	const q = `
SELECT id, user_id, course_id, granted_at, grant_source
  FROM access_grants
 WHERE user_id = $1 AND course_id = $2;
`
	row, err := pickRow(ctx, r.pool, tx, q, userID, courseID)
	if err != nil {
		return nil, err
	}

	var g model.AccessGrant
	if err := row.Scan(&g.ID, &g.UserID, &g.CourseID, &g.GrantedAt, &g.GrantSource); err != nil {
		return nil, mapScanError(err)
	}
	return &g, nil
}

func (r *accessGrantRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.AccessGrant, error) {
	const q = `
SELECT id, user_id, course_id, granted_at, grant_source
  FROM access_grants
 WHERE user_id = $1
 ORDER BY granted_at DESC;
`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AccessGrant
	for rows.Next() {
		var g model.AccessGrant
		if err := rows.Scan(&g.ID, &g.UserID, &g.CourseID, &g.GrantedAt, &g.GrantSource); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

func (r *accessGrantRepo) CountByCourse(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	const q = `SELECT course_id, COUNT(*) FROM access_grants GROUP BY course_id;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var courseID string
		var n int
		if err := rows.Scan(&courseID, &n); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[courseID] = n
	}
	return out, rows.Err()
}
