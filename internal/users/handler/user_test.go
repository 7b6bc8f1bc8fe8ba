package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"shareit/pkg/errors"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
)

type mockUserService struct {
	createFunc func(ctx context.Context, user *model.User) (*model.User, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockUserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	return m.createFunc(ctx, user)
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return nil, errors.NotFoundWithID("User", id, nil)
}

func (m *mockUserService) GetAll(ctx context.Context) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserService) Update(ctx context.Context, id string, updates *model.UserUpdate) (*model.User, error) {
	return &model.User{ID: id}, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newRouter(svc *mockUserService) *httprouter.Router {
	router := httprouter.New()
	NewUserHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCreate(t *testing.T) {
	svc := &mockUserService{
		createFunc: func(ctx context.Context, user *model.User) (*model.User, error) {
			user.ID = "65f1c0ffee0000000000aaaa"
			return user, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ann","email":"ann@example.com"}`))
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Data model.User `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Data.ID != "65f1c0ffee0000000000aaaa" || body.Data.Email != "ann@example.com" {
		t.Errorf("unexpected body %+v", body.Data)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	svc := &mockUserService{
		createFunc: func(ctx context.Context, user *model.User) (*model.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		svc    *mockUserService
		want   int
		code   string
	}{
		{"unknown user", http.MethodGet, "/users/65f1c0ffee0000000000ffff", &mockUserService{}, http.StatusNotFound, errors.CodeNotFound},
		{"delete restricted", http.MethodDelete, "/users/65f1c0ffee0000000000aaaa", &mockUserService{
			deleteFunc: func(ctx context.Context, id string) error {
				return errors.Conflict("User still owns items or has bookings", nil)
			},
		}, http.StatusConflict, errors.CodeConflict},
		{"delete ok", http.MethodDelete, "/users/65f1c0ffee0000000000aaaa", &mockUserService{}, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.svc).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.code == "" {
				return
			}
			var body httputil.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, body.Code)
			}
		})
	}
}
