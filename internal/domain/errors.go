package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the entity already exists, e.g. a second
	// registration with the same phone number.
	ErrConflict = errors.New("already exists")
)
