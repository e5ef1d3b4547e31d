package user

import "errors"

var (
	// ErrNotFound indicates no identity exists for the given username.
	ErrNotFound = errors.New("user: not found")

	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("user: duplicate username")
)
