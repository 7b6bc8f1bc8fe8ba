package errors

import "errors"

var (
	ErrNotFound = errors.New("item not found")

	ErrInvalidID = errors.New("invalid item ID format")

	ErrNotOwner = errors.New("item does not belong to user")

	// ErrCommentNotAllowed means the author has no finished booking of the item.
	ErrCommentNotAllowed = errors.New("user has not completed a booking of this item")
)
