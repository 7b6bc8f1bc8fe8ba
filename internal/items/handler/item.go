package handler

import (
	"net/http"

	"shareit/internal/items/service"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// searchSegment shares the /items/:id position because httprouter does not
// allow a static segment next to a wildcard.
const searchSegment = "search"

type ItemHandler struct {
	service  service.ItemService
	pageSize int
	log      *logger.Logger
}

func NewItemHandler(service service.ItemService, pageSize int, log *logger.Logger) *ItemHandler {
	return &ItemHandler{
		service:  service,
		pageSize: pageSize,
		log:      log,
	}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	var in model.ItemCreate
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	item, err := h.service.Create(r.Context(), actorID, &in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, item); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var updates model.ItemUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	item, err := h.service.Update(r.Context(), actorID, ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}
	h.writeSuccess(w, "Update", item)
}

func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == searchSegment {
		h.Search(w, r, ps)
		return
	}

	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	item, err := h.service.GetByID(r.Context(), actorID, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}
	h.writeSuccess(w, "GetByID", item)
}

func (h *ItemHandler) ListByOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "ListByOwner", err)
		return
	}

	from, size, err := httputil.ExtractFromSize(r, h.pageSize)
	if err != nil {
		h.writeError(w, "ListByOwner", err)
		return
	}

	items, err := h.service.ListByOwner(r.Context(), actorID, from, size)
	if err != nil {
		h.writeError(w, "ListByOwner", err)
		return
	}
	h.writePage(w, "ListByOwner", items, from, size)
}

func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from, size, err := httputil.ExtractFromSize(r, h.pageSize)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	items, err := h.service.Search(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}
	h.writePage(w, "Search", items, from, size)
}

func (h *ItemHandler) CreateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actorID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, "CreateComment", err)
		return
	}

	var in model.CommentCreate
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "CreateComment", err)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), actorID, ps.ByName("id"), &in)
	if err != nil {
		h.writeError(w, "CreateComment", err)
		return
	}

	if err := httputil.WriteCreated(w, comment); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateComment", "operation", "WriteCreated", "error", err)
	}
}

func (h *ItemHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ItemHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *ItemHandler) writePage(w http.ResponseWriter, handler string, data any, from, size int) {
	if err := httputil.WritePage(w, data, from, size); err != nil {
		h.log.Error("failed to write page response", "handler", handler, "operation", "WritePage", "error", err)
	}
}

func (h *ItemHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/items", h.Create)
	router.GET("/items", h.ListByOwner)
	router.GET("/items/:id", h.GetByID)
	router.PATCH("/items/:id", h.Update)
	router.POST("/items/:id/comment", h.CreateComment)
}
