package validator

import (
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type RequestValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRequestValidator(log *logger.Logger) *RequestValidator {
	return &RequestValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *RequestValidator) Validate(request *model.RequestCreate) error {
	return validation.Struct(v.validate, request)
}
