package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainSentinelSurvivesWrapping(t *testing.T) {
	sentinel := errors.New("booking not found")
	appErr := NotFoundWithID("Booking", "abc", sentinel)

	if !errors.Is(appErr, sentinel) {
		t.Error("errors.Is should see the domain sentinel through AppError")
	}

	outer := fmt.Errorf("handler: %w", appErr)
	if !HasCode(outer, CodeNotFound) {
		t.Error("HasCode should find the AppError through fmt wrapping")
	}
	if AsAppError(outer).StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", AsAppError(outer).StatusCode())
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"forbidden", Forbidden("no", nil), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("dup", nil), CodeConflict, http.StatusConflict},
		{"bad request", BadRequest(CodeAlreadyDecided, "decided", nil), CodeAlreadyDecided, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.status)
			}
		})
	}
}

func TestAsAppError_PlainError(t *testing.T) {
	appErr := AsAppError(errors.New("boom"))
	if appErr.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, appErr.Code)
	}
	if IsAppError(errors.New("boom")) {
		t.Error("plain error must not be reported as AppError")
	}
}

func TestToJSON(t *testing.T) {
	appErr := New(CodeUnknownState, "Unknown state: SOON", http.StatusBadRequest)
	want := `{"code":"UNKNOWN_STATE","message":"Unknown state: SOON"}`
	if got := string(appErr.ToJSON()); got != want {
		t.Errorf("ToJSON() = %s, want %s", got, want)
	}
}
