package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.ActivationCodeRepository = (*activationCodeRepo)(nil)

type activationCodeRepo struct {
	pool *pgxpool.Pool
}

func NewActivationCodeRepo(pool *pgxpool.Pool) repository.ActivationCodeRepository {
	return &activationCodeRepo{pool: pool}
}

// Save inserts a freshly issued code. A duplicate code value surfaces as
// ErrAlreadyExists so the issuer can regenerate and retry.
func (r *activationCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error {
	if code.ID == "" {
		code.ID = ulid.Make().String()
	}

	const q = `
INSERT INTO activation_codes (id, code, course_id, status, issued_at, redeemed_at, redeemed_by_user_id, revoked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		code.ID, code.Code, code.CourseID, code.Status, code.IssuedAt, code.RedeemedAt, code.RedeemedByUserID, code.RevokedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByCode loads a code by its normalized value regardless of status.
func (r *activationCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.ActivationCode, error) {
	const q = `
SELECT id, code, course_id, status, issued_at, redeemed_at, redeemed_by_user_id, revoked_at
  FROM activation_codes
 WHERE code = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}

	var ac model.ActivationCode
	err = row.Scan(
		&ac.ID, &ac.Code, &ac.CourseID, &ac.Status, &ac.IssuedAt, &ac.RedeemedAt, &ac.RedeemedByUserID, &ac.RevokedAt,
	)
	if err != nil {
		return nil, mapScanError(err)
	}
	return &ac, nil
}

// MarkRedeemed is the compare-and-set at the heart of redemption: the row only
// changes when it is still unused, and the affected-row count tells the caller
// whether it won the transition.
func (r *activationCodeRepo) MarkRedeemed(ctx context.Context, tx repository.Tx, code, userID string, at time.Time) (bool, error) {
	const q = `
UPDATE activation_codes
   SET status = 'redeemed', redeemed_at = $2, redeemed_by_user_id = $3
 WHERE code = $1 AND status = 'unused';
`
	tag, err := execSQL(ctx, r.pool, tx, q, code, at, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkRevoked follows the same conditional-update contract as MarkRedeemed.
func (r *activationCodeRepo) MarkRevoked(ctx context.Context, tx repository.Tx, code string, at time.Time) (bool, error) {
	const q = `
UPDATE activation_codes
   SET status = 'revoked', revoked_at = $2
 WHERE code = $1 AND status = 'unused';
`
	tag, err := execSQL(ctx, r.pool, tx, q, code, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *activationCodeRepo) List(ctx context.Context, tx repository.Tx, status string, offset, limit int) ([]*model.ActivationCode, error) {
	const q = `
SELECT id, code, course_id, status, issued_at, redeemed_at, redeemed_by_user_id, revoked_at
  FROM activation_codes
 WHERE ($1 = '' OR status = $1)
 ORDER BY issued_at DESC
OFFSET $2 LIMIT $3;
`
	rows, err := queryRows(ctx, r.pool, tx, q, status, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ActivationCode
	for rows.Next() {
		var ac model.ActivationCode
		if err := rows.Scan(
			&ac.ID, &ac.Code, &ac.CourseID, &ac.Status, &ac.IssuedAt, &ac.RedeemedAt, &ac.RedeemedByUserID, &ac.RevokedAt,
		); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &ac)
	}
	return out, rows.Err()
}

func (r *activationCodeRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	const q = `SELECT status, COUNT(*) FROM activation_codes GROUP BY status;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[status] = n
	}
	return out, rows.Err()
}
