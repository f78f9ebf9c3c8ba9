package domain

import "errors"

var (
	// ErrConstraintViolation indicates a store-enforced rule (unique email, required column) was broken.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrStorageUnavailable indicates the store could not be opened, read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
