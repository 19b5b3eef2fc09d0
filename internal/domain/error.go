package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")

	// Activation errors
	ErrMalformedCode   = errors.New("activation code is malformed")
	ErrCodeNotFound    = errors.New("activation code not found")
	ErrCodeRevoked     = errors.New("activation code revoked")
	ErrCodeAlreadyUsed = errors.New("activation code already used")
	ErrRateLimited     = errors.New("too many activation attempts")
)
