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

type call struct {
	method   string
	actor    string
	id       string
	state    string
	from     int
	size     int
	approved bool
}

type mockBookingService struct {
	calls []call
	err   error
}

func (m *mockBookingService) Create(ctx context.Context, actorID string, in *model.BookingCreate) (*model.BookingView, error) {
	m.calls = append(m.calls, call{method: "Create", actor: actorID, id: in.ItemID})
	if m.err != nil {
		return nil, m.err
	}
	return &model.BookingView{ID: "b1", Status: model.StatusWaiting}, nil
}

func (m *mockBookingService) SetApproval(ctx context.Context, actorID string, bookingID string, approved bool) (*model.BookingView, error) {
	m.calls = append(m.calls, call{method: "SetApproval", actor: actorID, id: bookingID, approved: approved})
	if m.err != nil {
		return nil, m.err
	}
	return &model.BookingView{ID: bookingID, Status: model.StatusApproved}, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, actorID string, bookingID string) (*model.BookingView, error) {
	m.calls = append(m.calls, call{method: "GetByID", actor: actorID, id: bookingID})
	return &model.BookingView{ID: bookingID}, m.err
}

func (m *mockBookingService) ListForBooker(ctx context.Context, actorID string, stateName string, from, size int) ([]*model.BookingView, error) {
	m.calls = append(m.calls, call{method: "ListForBooker", actor: actorID, state: stateName, from: from, size: size})
	return []*model.BookingView{}, m.err
}

func (m *mockBookingService) ListForOwner(ctx context.Context, actorID string, stateName string, from, size int) ([]*model.BookingView, error) {
	m.calls = append(m.calls, call{method: "ListForOwner", actor: actorID, state: stateName, from: from, size: size})
	return []*model.BookingView{}, m.err
}

const actor = "65f1c0ffee0000000000000a"

func serve(svc *mockBookingService, method, path, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewBookingHandler(svc, 10, logger.Discard()).RegisterRoutes(router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(httputil.UserIDHeader, actor)
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
		want     call
	}{
		{"create", http.MethodPost, "/bookings", `{"item_id":"65f1c0ffee0000000000100a","start":"2030-01-01T10:00:00Z","end":"2030-01-02T10:00:00Z"}`,
			http.StatusCreated, call{method: "Create", actor: actor, id: "65f1c0ffee0000000000100a"}},
		{"approve", http.MethodPatch, "/bookings/b1?approved=true", "",
			http.StatusOK, call{method: "SetApproval", actor: actor, id: "b1", approved: true}},
		{"reject", http.MethodPatch, "/bookings/b1?approved=false", "",
			http.StatusOK, call{method: "SetApproval", actor: actor, id: "b1", approved: false}},
		{"get", http.MethodGet, "/bookings/b1", "",
			http.StatusOK, call{method: "GetByID", actor: actor, id: "b1"}},
		{"booker listing", http.MethodGet, "/bookings?state=PAST&from=3&size=2", "",
			http.StatusOK, call{method: "ListForBooker", actor: actor, state: "PAST", from: 3, size: 2}},
		{"booker listing defaults", http.MethodGet, "/bookings", "",
			http.StatusOK, call{method: "ListForBooker", actor: actor, size: 10}},
		{"owner listing", http.MethodGet, "/bookings/owner?state=WAITING", "",
			http.StatusOK, call{method: "ListForOwner", actor: actor, state: "WAITING", size: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{}
			w := serve(svc, tt.method, tt.path, tt.body)

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if len(svc.calls) != 1 {
				t.Fatalf("expected one service call, got %v", svc.calls)
			}
			if svc.calls[0] != tt.want {
				t.Errorf("got call %+v, want %+v", svc.calls[0], tt.want)
			}
		})
	}
}

func TestSetApproval_InvalidFlag(t *testing.T) {
	for _, path := range []string{"/bookings/b1", "/bookings/b1?approved=maybe"} {
		svc := &mockBookingService{}
		w := serve(svc, http.MethodPatch, path, "")

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
		if len(svc.calls) != 0 {
			t.Errorf("%s: service must not be called", path)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code string
	}{
		{errors.BadRequest(errors.CodeUnknownState, "Unknown state: X", nil), http.StatusBadRequest, errors.CodeUnknownState},
		{errors.BadRequest(errors.CodeAlreadyDecided, "Booking is already APPROVED", nil), http.StatusBadRequest, errors.CodeAlreadyDecided},
		{errors.NotFoundWithID("Booking", "b1", nil), http.StatusNotFound, errors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := serve(&mockBookingService{err: tt.err}, http.MethodPatch, "/bookings/b1?approved=true", "")
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			var resp httputil.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, resp.Code)
			}
		})
	}
}
