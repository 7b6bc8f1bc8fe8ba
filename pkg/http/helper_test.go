package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	apperrors "shareit/pkg/errors"
	"testing"
)

func TestExtractFromSize(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantFrom int
		wantSize int
		wantErr  bool
	}{
		{"defaults", "", 0, 10, false},
		{"explicit", "?from=3&size=2", 3, 2, false},
		{"alphabetic from", "?from=abc", 0, 0, true},
		{"alphabetic size", "?size=xyz", 0, 0, true},
		{"negative from", "?from=-1&size=5", 0, 0, true},
		{"zero size", "?from=0&size=0", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/bookings"+tt.query, nil)
			from, size, err := ExtractFromSize(req, 10)
			if tt.wantErr {
				if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
					t.Fatalf("expected invalid input error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from != tt.wantFrom || size != tt.wantSize {
				t.Errorf("got from=%d size=%d, want from=%d size=%d", from, size, tt.wantFrom, tt.wantSize)
			}
		})
	}
}

func TestExtractUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	if _, err := ExtractUserID(req); err == nil {
		t.Fatal("expected error for missing header")
	}

	req.Header.Set(UserIDHeader, " 65f1c0ffee0000000000abcd ")
	id, err := ExtractUserID(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "65f1c0ffee0000000000abcd" {
		t.Errorf("unexpected id %q", id)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"app error", apperrors.BadRequest(apperrors.CodeUnknownState, "Unknown state: SOON", nil), http.StatusBadRequest, apperrors.CodeUnknownState},
		{"not found", apperrors.NotFoundWithID("Booking", "1", nil), http.StatusNotFound, apperrors.CodeNotFound},
		{"plain error", errors.New("secret driver detail"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := WriteError(w, tt.err); err != nil {
				t.Fatalf("WriteError failed: %v", err)
			}
			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Code != tt.wantBody {
				t.Errorf("expected code %s, got %s", tt.wantBody, body.Code)
			}
			if body.Error == "secret driver detail" {
				t.Error("internal error text leaked to client")
			}
		})
	}
}
