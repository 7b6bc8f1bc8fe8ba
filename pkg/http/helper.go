package http

import (
	"encoding/json"
	"net/http"
	apperrors "shareit/pkg/errors"
	"strconv"
	"strings"
)

// UserIDHeader identifies the acting user. Authentication happens upstream.
const UserIDHeader = "X-Sharer-User-Id"

func ExtractUserID(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if userID == "" {
		return "", apperrors.InvalidInput("missing " + UserIDHeader + " header")
	}
	return userID, nil
}

// ExtractFromSize reads the offset-style "from" and "size" query parameters.
// from must be >= 0 and size must be > 0.
func ExtractFromSize(r *http.Request, defaultSize int) (int, int, error) {
	query := r.URL.Query()

	from := 0
	if s := query.Get("from"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid from parameter: " + s)
		}
		from = v
	}

	size := defaultSize
	if s := query.Get("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid size parameter: " + s)
		}
		size = v
	}

	if from < 0 {
		return 0, 0, apperrors.InvalidInput("from must not be negative")
	}
	if size <= 0 {
		return 0, 0, apperrors.InvalidInput("size must be positive")
	}
	return from, size, nil
}

// DecodeJSON decodes the request body into v. Any decode failure, including a
// body over the size limit, is reported as invalid input.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}
