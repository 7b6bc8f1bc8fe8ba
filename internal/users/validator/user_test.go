package validator

import (
	"errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/validation"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestUserValidator_Validate(t *testing.T) {
	v := NewUserValidator(logger.Discard())

	tests := []struct {
		name      string
		user      *model.User
		wantField string
	}{
		{"valid", &model.User{Name: "Ann", Email: "ann@example.com"}, ""},
		{"missing name", &model.User{Email: "ann@example.com"}, "name"},
		{"bad email", &model.User{Name: "Ann", Email: "not-an-email"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.user)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, verrs[0].Field)
			}
		})
	}
}

func TestUserValidator_ValidateUpdate(t *testing.T) {
	v := NewUserValidator(logger.Discard())

	if err := v.ValidateUpdate(&model.UserUpdate{}); err != nil {
		t.Errorf("empty update is a no-op, got %v", err)
	}
	if err := v.ValidateUpdate(&model.UserUpdate{Name: strPtr("Bob")}); err != nil {
		t.Errorf("name-only update should pass: %v", err)
	}
	if err := v.ValidateUpdate(&model.UserUpdate{Email: strPtr("bob@")}); err == nil {
		t.Error("malformed email should be rejected")
	}
}
