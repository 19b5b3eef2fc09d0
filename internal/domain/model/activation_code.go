package model

import (
	"regexp"
	"strings"
	"time"
)

// CodeStatus is the lifecycle state of an activation code.
// unused -> redeemed is the only transition this service performs;
// unused -> revoked is administrative. Both redeemed and revoked are terminal.
type CodeStatus string

const (
	CodeStatusUnused   CodeStatus = "unused"
	CodeStatusRedeemed CodeStatus = "redeemed"
	CodeStatusRevoked  CodeStatus = "revoked"
)

// Canonical code shape: literal "ALN-" prefix followed by two dash-separated
// groups of four uppercase alphanumerics, e.g. ALN-1A2B-3C4D.
var codePattern = regexp.MustCompile(`^ALN-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// ActivationCode is a single-use code that unlocks a course once redeemed.
// CourseID is nil for plan-level codes that unlock every published course.
// Rows are never deleted; a redeemed code doubles as the audit record.
type ActivationCode struct {
	ID               string
	Code             string
	CourseID         *string
	Status           CodeStatus
	IssuedAt         time.Time
	RedeemedAt       *time.Time
	RedeemedByUserID *string
	RevokedAt        *time.Time
}

// NormalizeCode trims surrounding whitespace, uppercases the input and reports
// whether the result matches the canonical format. It never touches the store,
// so obviously-bad input is rejected before any lookup happens.
func NormalizeCode(raw string) (string, bool) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	return norm, codePattern.MatchString(norm)
}

func (c *ActivationCode) IsZero() bool { return c == nil || c.ID == "" }

// RedeemedBy reports whether the code has already been redeemed by the given user.
func (c *ActivationCode) RedeemedBy(userID string) bool {
	return c.Status == CodeStatusRedeemed && c.RedeemedByUserID != nil && *c.RedeemedByUserID == userID
}
