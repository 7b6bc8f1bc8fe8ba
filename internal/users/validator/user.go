package validator

import (
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *UserValidator) Validate(user *model.User) error {
	return validation.Struct(v.validate, user)
}

// ValidateUpdate checks only the fields present. An empty update is valid and
// leaves the user unchanged.
func (v *UserValidator) ValidateUpdate(update *model.UserUpdate) error {
	return validation.Struct(v.validate, update)
}
