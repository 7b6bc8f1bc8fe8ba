package validator

import (
	"fmt"
	bookingserrors "shareit/internal/bookings/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/validation"
	"time"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validation.New(),
		logger:   log,
	}
}

// Validate checks the request shape, then that the interval lies ahead of now:
// start may equal now but not precede it, and end must be strictly later than
// now. Tense failures wrap ErrInvalidInterval. Ordering of start and end is
// left to the booking rules.
func (v *BookingValidator) Validate(booking *model.BookingCreate, now time.Time) error {
	if err := validation.Struct(v.validate, booking); err != nil {
		return err
	}

	if booking.Start.Before(now) {
		return fmt.Errorf("%w: start cannot be in the past", bookingserrors.ErrInvalidInterval)
	}
	if !booking.End.After(now) {
		return fmt.Errorf("%w: end must be in the future", bookingserrors.ErrInvalidInterval)
	}
	return nil
}
