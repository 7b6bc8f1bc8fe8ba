package handler

import (
	"context"
	"net/http"
	"strconv"

	"shareit/internal/bookings/service"
	apperrors "shareit/pkg/errors"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// ownerSegment shares the /bookings/:id position; httprouter cannot register a
// static segment beside a wildcard.
const ownerSegment = "owner"

type BookingHandler struct {
	service  service.BookingService
	pageSize int
	log      *logger.Logger
}

func NewBookingHandler(service service.BookingService, pageSize int, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		pageSize: pageSize,
		log:      log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var in model.BookingCreate
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), actorID, &in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) SetApproval(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "SetApproval", err)
		return
	}

	raw := r.URL.Query().Get("approved")
	approved, err := strconv.ParseBool(raw)
	if err != nil {
		h.writeError(w, "SetApproval", apperrors.InvalidInput("approved must be true or false, got: "+raw))
		return
	}

	booking, err := h.service.SetApproval(r.Context(), actorID, ps.ByName("id"), approved)
	if err != nil {
		h.writeError(w, "SetApproval", err)
		return
	}
	h.writeSuccess(w, "SetApproval", booking)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == ownerSegment {
		h.ListForOwner(w, r, ps)
		return
	}

	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	booking, err := h.service.GetByID(r.Context(), actorID, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}
	h.writeSuccess(w, "GetByID", booking)
}

func (h *BookingHandler) ListForBooker(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "ListForBooker", h.service.ListForBooker)
}

func (h *BookingHandler) ListForOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "ListForOwner", h.service.ListForOwner)
}

type listFunc func(ctx context.Context, actorID string, stateName string, from, size int) ([]*model.BookingView, error)

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, handler string, list listFunc) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}

	from, size, err := httputil.ExtractFromSize(r, h.pageSize)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}

	bookings, err := list(r.Context(), actorID, r.URL.Query().Get("state"), from, size)
	if err != nil {
		h.writeError(w, handler, err)
		return
	}

	if err := httputil.WritePage(w, bookings, from, size); err != nil {
		h.log.Error("failed to write page response", "handler", handler, "operation", "WritePage", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings", h.ListForBooker)
	router.GET("/bookings/:id", h.GetByID)
	router.PATCH("/bookings/:id", h.SetApproval)
}
