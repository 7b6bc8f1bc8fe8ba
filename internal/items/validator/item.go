package validator

import (
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// ItemValidator checks structure only. Callers normalize whitespace first so
// that a blank name or comment fails the required rule.
type ItemValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewItemValidator(log *logger.Logger) *ItemValidator {
	return &ItemValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *ItemValidator) Validate(item *model.ItemCreate) error {
	return validation.Struct(v.validate, item)
}

func (v *ItemValidator) ValidateUpdate(update *model.ItemUpdate) error {
	return validation.Struct(v.validate, update)
}

func (v *ItemValidator) ValidateComment(comment *model.CommentCreate) error {
	return validation.Struct(v.validate, comment)
}
