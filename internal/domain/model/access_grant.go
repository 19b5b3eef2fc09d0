package model

import (
	"time"

	"israa-academy/internal/domain"

	"github.com/oklog/ulid/v2"
)

// GrantSource records how a user obtained access to a course.
type GrantSource string

const (
	GrantSourceActivationCode GrantSource = "activation-code"
	GrantSourceSubscription   GrantSource = "subscription"
	GrantSourceAdminOverride  GrantSource = "admin-override"
)

// AccessGrant marks a (user, course) pair as unlocked. Grants are insert-only
// and unique per pair; revocation is a separate administrative action.
type AccessGrant struct {
	ID          string
	UserID      string
	CourseID    string
	GrantedAt   time.Time
	GrantSource GrantSource
}

// NewAccessGrant validates and constructs a grant. IDs are ULIDs so the audit
// trail sorts chronologically.
func NewAccessGrant(userID, courseID string, source GrantSource) (*AccessGrant, error) {
	if userID == "" || courseID == "" {
		return nil, domain.ErrInvalidArgument
	}
	switch source {
	case GrantSourceActivationCode, GrantSourceSubscription, GrantSourceAdminOverride:
	default:
		return nil, domain.ErrInvalidArgument
	}
	return &AccessGrant{
		ID:          ulid.Make().String(),
		UserID:      userID,
		CourseID:    courseID,
		GrantedAt:   time.Now(),
		GrantSource: source,
	}, nil
}
