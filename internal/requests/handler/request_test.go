package handler

import (
	"context"
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

type mockRequestService struct {
	calls []string
	from  int
	size  int
}

func (m *mockRequestService) Create(ctx context.Context, actorID string, in *model.RequestCreate) (*model.RequestView, error) {
	m.calls = append(m.calls, "Create")
	return &model.RequestView{Request: model.Request{ID: "r1", Description: in.Description}, Items: []model.ItemSummary{}}, nil
}

func (m *mockRequestService) ListOwn(ctx context.Context, actorID string) ([]*model.RequestView, error) {
	m.calls = append(m.calls, "ListOwn")
	return []*model.RequestView{}, nil
}

func (m *mockRequestService) ListOthers(ctx context.Context, actorID string, from, size int) ([]*model.RequestView, error) {
	m.calls = append(m.calls, "ListOthers")
	m.from, m.size = from, size
	return []*model.RequestView{}, nil
}

func (m *mockRequestService) GetByID(ctx context.Context, actorID string, requestID string) (*model.RequestView, error) {
	m.calls = append(m.calls, "GetByID")
	return nil, errors.NotFoundWithID("Request", requestID, nil)
}

func serve(svc *mockRequestService, method, path, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewRequestHandler(svc, 10, logger.Discard()).RegisterRoutes(router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(httputil.UserIDHeader, "65f1c0ffee0000000000000a")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
		wantCall string
	}{
		{"create", http.MethodPost, "/requests", `{"description":"Need a drill"}`, http.StatusCreated, "Create"},
		{"own", http.MethodGet, "/requests", "", http.StatusOK, "ListOwn"},
		{"others", http.MethodGet, "/requests/all?from=5&size=5", "", http.StatusOK, "ListOthers"},
		{"by id", http.MethodGet, "/requests/65f1c0ffee0000000000200a", "", http.StatusNotFound, "GetByID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRequestService{}
			w := serve(svc, tt.method, tt.path, tt.body)

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if len(svc.calls) != 1 || svc.calls[0] != tt.wantCall {
				t.Errorf("expected call %s, got %v", tt.wantCall, svc.calls)
			}
		})
	}
}

func TestListOthers_DefaultsPaging(t *testing.T) {
	svc := &mockRequestService{}
	w := serve(svc, http.MethodGet, "/requests/all", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.from != 0 || svc.size != 10 {
		t.Errorf("expected from=0 size=10, got from=%d size=%d", svc.from, svc.size)
	}
}
