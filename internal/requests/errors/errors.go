package errors

import "errors"

var (
	ErrNotFound = errors.New("request not found")

	ErrInvalidID = errors.New("invalid request ID format")
)
