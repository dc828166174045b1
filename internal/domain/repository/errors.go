package repository

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// DuplicateError is returned when a write violates a uniqueness constraint.
// Field names the colliding attribute ("email" or "username").
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already registered"
}
