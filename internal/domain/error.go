package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid execution context")
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")

	// Account errors
	ErrReferralCodeExhausted = errors.New("could not allocate a unique referral code")
	ErrSelfReferral          = errors.New("user cannot refer themselves")
	ErrAlreadyReferred       = errors.New("user was already referred")

	// Storage lifecycle
	ErrSchemaInit = errors.New("schema initialization failed")
)
