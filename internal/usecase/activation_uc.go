package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

// RedemptionStatus classifies the outcome of a redemption attempt. All
// classification happens here; HTTP handlers only map these to status codes.
type RedemptionStatus string

const (
	RedemptionActivated     RedemptionStatus = "activated"
	RedemptionAlreadyActive RedemptionStatus = "already_active"
	RedemptionInvalidCode   RedemptionStatus = "invalid_code"
	RedemptionMalformed     RedemptionStatus = "malformed"
)

// RedemptionResult carries the classified outcome and, for course-bound
// codes, the unlocked course ID. CourseID stays empty for plan-level codes.
type RedemptionResult struct {
	Status   RedemptionStatus
	CourseID string
}

// Compile-time check
var _ ActivationUseCase = (*activationUC)(nil)

type ActivationUseCase interface {
	// ValidateFormat trims, uppercases and checks the raw input against the
	// ALN-XXXX-XXXX pattern. It never touches the store.
	ValidateFormat(raw string) (normalized string, ok bool)
	// Redeem consumes a normalized code for a user per the redemption rules.
	// The returned error is reserved for infrastructure failures; every
	// business outcome comes back as a RedemptionResult.
	Redeem(ctx context.Context, normalizedCode, userID string) (*RedemptionResult, error)
	// IssueCodes generates count fresh unused codes, optionally bound to a
	// course. A nil courseID issues plan-level codes.
	IssueCodes(ctx context.Context, courseID *string, count int) ([]string, error)
	// Revoke moves an unused code to the terminal revoked state. Revoking an
	// already revoked code is a no-op.
	Revoke(ctx context.Context, normalizedCode string) error
	// ListCodes pages through issued codes, optionally filtered by status.
	ListCodes(ctx context.Context, status string, offset, limit int) ([]*model.ActivationCode, error)
	// CodeTotals returns code counts keyed by status.
	CodeTotals(ctx context.Context) (map[string]int, error)
}

type activationUC struct {
	codes   repository.ActivationCodeRepository
	grants  repository.AccessGrantRepository
	courses repository.CourseRepository
	tm      repository.TransactionManager
	log     *zerolog.Logger
}

func NewActivationUseCase(
	codes repository.ActivationCodeRepository,
	grants repository.AccessGrantRepository,
	courses repository.CourseRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *activationUC {
	return &activationUC{codes: codes, grants: grants, courses: courses, tm: tm, log: logger}
}

func (u *activationUC) ValidateFormat(raw string) (string, bool) {
	return model.NormalizeCode(raw)
}

// Redeem runs the whole redemption inside one transaction so the status
// transition and the grant creation commit or roll back together. The
// unused -> redeemed step is a conditional update, not read-then-write: two
// concurrent attempts on the same code race on the UPDATE and exactly one
// wins; the loser re-reads the row to classify what happened.
func (u *activationUC) Redeem(ctx context.Context, normalizedCode, userID string) (*RedemptionResult, error) {
	if normalizedCode == "" || userID == "" {
		return nil, domain.ErrInvalidArgument
	}

	res := &RedemptionResult{Status: RedemptionInvalidCode}
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		now := time.Now().UTC()

		won, err := u.codes.MarkRedeemed(ctx, tx, normalizedCode, userID, now)
		if err != nil {
			return err
		}
		if !won {
			return u.classifyLoss(ctx, tx, normalizedCode, userID, res)
		}

		code, err := u.codes.FindByCode(ctx, tx, normalizedCode)
		if err != nil {
			return err
		}
		if err := u.grantAccess(ctx, tx, code, userID); err != nil {
			return err
		}
		res.Status = RedemptionActivated
		if code.CourseID != nil {
			res.CourseID = *code.CourseID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().
		Str("user_id", userID).
		Str("result", string(res.Status)).
		Msg("activation attempt")
	return res, nil
}

// classifyLoss maps a failed conditional update onto the decision table.
// Revoked codes and codes redeemed by someone else are deliberately reported
// as invalid_code so callers cannot probe which codes exist or who owns them.
func (u *activationUC) classifyLoss(ctx context.Context, tx repository.Tx, code, userID string, res *RedemptionResult) error {
	existing, err := u.codes.FindByCode(ctx, tx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			res.Status = RedemptionInvalidCode
			return nil
		}
		return err
	}
	if existing.RedeemedBy(userID) {
		res.Status = RedemptionAlreadyActive
		if existing.CourseID != nil {
			res.CourseID = *existing.CourseID
		}
		return nil
	}
	res.Status = RedemptionInvalidCode
	return nil
}

// grantAccess creates the grants a redeemed code entitles the user to.
// Course-bound codes grant their single course; plan-level codes grant every
// published course. The insert is ON CONFLICT DO NOTHING underneath, so a
// user who already holds an equivalent grant is not duplicated.
func (u *activationUC) grantAccess(ctx context.Context, tx repository.Tx, code *model.ActivationCode, userID string) error {
	var courseIDs []string
	if code.CourseID != nil {
		courseIDs = []string{*code.CourseID}
	} else {
		published, err := u.courses.ListPublished(ctx, tx)
		if err != nil {
			return err
		}
		for _, c := range published {
			courseIDs = append(courseIDs, c.ID)
		}
	}

	for _, courseID := range courseIDs {
		grant, err := model.NewAccessGrant(userID, courseID, model.GrantSourceActivationCode)
		if err != nil {
			return err
		}
		if _, err := u.grants.Insert(ctx, tx, grant); err != nil {
			return err
		}
	}
	return nil
}

func (u *activationUC) IssueCodes(ctx context.Context, courseID *string, count int) ([]string, error) {
	if count <= 0 || count > 500 {
		return nil, domain.ErrInvalidArgument
	}
	if courseID != nil {
		if _, err := u.courses.FindByID(ctx, repository.NoTX, *courseID); err != nil {
			return nil, err
		}
	}

	issued := make([]string, 0, count)
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		for i := 0; i < count; i++ {
			code, err := u.issueOne(ctx, tx, courseID)
			if err != nil {
				return err
			}
			issued = append(issued, code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Int("count", len(issued)).Msg("issued activation codes")
	return issued, nil
}

// issueOne retries on the unlikely event of a generated code colliding with
// an existing row.
func (u *activationUC) issueOne(ctx context.Context, tx repository.Tx, courseID *string) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		value, err := generateCode()
		if err != nil {
			return "", err
		}
		ac := &model.ActivationCode{
			ID:       ulid.Make().String(),
			Code:     value,
			CourseID: courseID,
			Status:   model.CodeStatusUnused,
			IssuedAt: time.Now().UTC(),
		}
		err = u.codes.Save(ctx, tx, ac)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return "", err
		}
	}
	return "", domain.ErrAlreadyExists
}

func (u *activationUC) Revoke(ctx context.Context, normalizedCode string) error {
	return u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ok, err := u.codes.MarkRevoked(ctx, tx, normalizedCode, time.Now().UTC())
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		existing, err := u.codes.FindByCode(ctx, tx, normalizedCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrCodeNotFound
			}
			return err
		}
		switch existing.Status {
		case model.CodeStatusRevoked:
			return nil // idempotent
		case model.CodeStatusRedeemed:
			return domain.ErrCodeAlreadyUsed
		default:
			return domain.ErrCodeNotFound
		}
	})
}

func (u *activationUC) ListCodes(ctx context.Context, status string, offset, limit int) ([]*model.ActivationCode, error) {
	switch status {
	case "", string(model.CodeStatusUnused), string(model.CodeStatusRedeemed), string(model.CodeStatusRevoked):
	default:
		return nil, domain.ErrInvalidArgument
	}
	return u.codes.List(ctx, repository.NoTX, status, offset, limit)
}

func (u *activationUC) CodeTotals(ctx context.Context) (map[string]int, error) {
	return u.codes.CountByStatus(ctx, repository.NoTX)
}
