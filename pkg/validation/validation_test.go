package validation

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Owner string `json:"owner_id" validate:"omitempty,mongodb"`
}

func TestStruct_TranslatesUsingJSONNames(t *testing.T) {
	err := Struct(New(), sample{Email: "nope", Owner: "42"})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	got := map[string]string{}
	for _, e := range verrs {
		got[e.Field] = e.Message
	}

	want := map[string]string{
		"name":     "name is required",
		"email":    "email must be a valid email address",
		"owner_id": "owner_id must be a valid MongoDB ObjectID",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %s: got %q, want %q", field, got[field], msg)
		}
	}

	details := verrs.Details()["fields"].(map[string]string)
	if details["name"] != "name is required" {
		t.Errorf("unexpected details %v", details)
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(New(), sample{Name: "Ann"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
