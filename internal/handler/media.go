package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/store"
	"github.com/skilletapp/skillet/internal/websocket"
)

var validMediaKinds = map[string]struct{}{
	model.MediaKindBook:  {},
	model.MediaKindMovie: {},
	model.MediaKindTV:    {},
}

var validMediaStatuses = map[string]struct{}{
	model.MediaStatusWant:       {},
	model.MediaStatusInProgress: {},
	model.MediaStatusFinished:   {},
}

type MediaHandler struct {
	store  *store.MediaStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewMediaHandler(s *store.MediaStore, hub *websocket.Hub, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{store: s, hub: hub, logger: logger}
}

// List returns the caller's media items; ?kind= narrows to one kind.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" {
		if _, ok := validMediaKinds[kind]; !ok {
			writeError(w, http.StatusBadRequest, "kind must be book, movie, or tv")
			return
		}
	}

	items, err := h.store.List(auth.UserID(r.Context()), kind)
	if err != nil {
		h.logger.Error("list media items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list media items")
		return
	}
	if items == nil {
		items = []model.MediaItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type mediaItemRequest struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Creator string `json:"creator"`
	Status  string `json:"status"`
	Rating  *int   `json:"rating"`
	Notes   string `json:"notes"`
}

func (req *mediaItemRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if _, ok := validMediaKinds[req.Kind]; !ok {
		return "kind must be book, movie, or tv"
	}
	if req.Status == "" {
		req.Status = model.MediaStatusWant
	}
	if _, ok := validMediaStatuses[req.Status]; !ok {
		return "status must be want, in_progress, or finished"
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return "rating must be between 1 and 5"
	}
	return ""
}

func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req mediaItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.Create(userID, req.Kind, req.Title, req.Creator, req.Status, req.Rating, req.Notes)
	if err != nil {
		h.logger.Error("create media item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create media item")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("media_item", "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.store.GetByID(id, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get media item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "media item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get media item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "media item not found")
		return
	}

	var req mediaItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.Update(id, userID, req.Kind, req.Title, req.Creator, req.Status, req.Rating, req.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update media item")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("media_item", "updated", id, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get media item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "media item not found")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete media item")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("media_item", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
