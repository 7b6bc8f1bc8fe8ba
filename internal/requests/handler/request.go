package handler

import (
	"net/http"

	"shareit/internal/requests/service"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// allSegment shares the /requests/:id position; httprouter cannot register a
// static segment beside a wildcard.
const allSegment = "all"

type RequestHandler struct {
	service  service.RequestService
	pageSize int
	log      *logger.Logger
}

func NewRequestHandler(service service.RequestService, pageSize int, log *logger.Logger) *RequestHandler {
	return &RequestHandler{
		service:  service,
		pageSize: pageSize,
		log:      log,
	}
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var in model.RequestCreate
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	request, err := h.service.Create(r.Context(), actorID, &in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, request); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *RequestHandler) ListOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "ListOwn", err)
		return
	}

	requests, err := h.service.ListOwn(r.Context(), actorID)
	if err != nil {
		h.writeError(w, "ListOwn", err)
		return
	}

	if err := httputil.WriteSuccess(w, requests); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOwn", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RequestHandler) ListOthers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "ListOthers", err)
		return
	}

	from, size, err := httputil.ExtractFromSize(r, h.pageSize)
	if err != nil {
		h.writeError(w, "ListOthers", err)
		return
	}

	requests, err := h.service.ListOthers(r.Context(), actorID, from, size)
	if err != nil {
		h.writeError(w, "ListOthers", err)
		return
	}

	if err := httputil.WritePage(w, requests, from, size); err != nil {
		h.log.Error("failed to write page response", "handler", "ListOthers", "operation", "WritePage", "error", err)
	}
}

func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == allSegment {
		h.ListOthers(w, r, ps)
		return
	}

	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	request, err := h.service.GetByID(r.Context(), actorID, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, request); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RequestHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RequestHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/requests", h.Create)
	router.GET("/requests", h.ListOwn)
	router.GET("/requests/:id", h.GetByID)
}
