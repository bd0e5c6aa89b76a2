package service

import "errors"

// Expected failures surfaced to controllers. Each maps to a 400 response
// except where the auth middleware already answered with a 401.
var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user does not exist")
	ErrInvalidPassword = errors.New("password is incorrect")
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("entry not found")
)
