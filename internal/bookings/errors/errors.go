package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrOwnItemBooking = errors.New("owner cannot book their own item")

	ErrItemUnavailable = errors.New("item is not available for booking")

	ErrInvalidInterval = errors.New("invalid booking interval")

	ErrAlreadyDecided = errors.New("booking status already decided")

	// ErrStatusChanged is returned by the conditional status update when another
	// writer changed the status after it was read.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
