package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrInvalidID = errors.New("invalid user ID format")

	ErrDuplicateEmail = errors.New("email already in use")

	// ErrHasDependents blocks deletion of a user who still owns items or has bookings.
	ErrHasDependents = errors.New("user still owns items or has bookings")
)
