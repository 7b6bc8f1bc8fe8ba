package validator

import (
	"errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/validation"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validation.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	out := map[string]string{}
	for _, e := range verrs {
		out[e.Field] = e.Message
	}
	return out
}

func TestValidate(t *testing.T) {
	v := NewItemValidator(logger.Discard())

	tests := []struct {
		name      string
		item      model.ItemCreate
		wantField string
	}{
		{"valid", model.ItemCreate{Name: "Drill", Description: "Cordless", Available: boolPtr(true)}, ""},
		{"valid with request", model.ItemCreate{Name: "Drill", Description: "Cordless", Available: boolPtr(false), RequestID: "65f1c0ffee0000000000aaaa"}, ""},
		{"missing available", model.ItemCreate{Name: "Drill", Description: "Cordless"}, "available"},
		{"empty name", model.ItemCreate{Description: "Cordless", Available: boolPtr(true)}, "name"},
		{"missing description", model.ItemCreate{Name: "Drill", Available: boolPtr(true)}, "description"},
		{"bad request id", model.ItemCreate{Name: "Drill", Description: "Cordless", Available: boolPtr(true), RequestID: "42"}, "request_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.item)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if _, ok := fields(t, err)[tt.wantField]; !ok {
				t.Errorf("expected error on %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewItemValidator(logger.Discard())

	if err := v.ValidateUpdate(&model.ItemUpdate{}); err != nil {
		t.Errorf("empty update must be valid, got %v", err)
	}
	if err := v.ValidateUpdate(&model.ItemUpdate{Available: boolPtr(false)}); err != nil {
		t.Errorf("availability-only update must be valid, got %v", err)
	}
	if _, ok := fields(t, v.ValidateUpdate(&model.ItemUpdate{Name: strPtr("")}))["name"]; !ok {
		t.Error("expected error on empty name")
	}
}

func TestValidateComment(t *testing.T) {
	v := NewItemValidator(logger.Discard())

	if err := v.ValidateComment(&model.CommentCreate{Text: "Great drill"}); err != nil {
		t.Errorf("expected valid comment, got %v", err)
	}
	if _, ok := fields(t, v.ValidateComment(&model.CommentCreate{}))["text"]; !ok {
		t.Error("expected error on empty text")
	}
}
