package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("token does not own resource")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConflict         = errors.New("resource already exists")
	ErrLookupFailed     = errors.New("football data lookup failed")
	ErrStoreUnavailable = errors.New("backing store unavailable")
)
