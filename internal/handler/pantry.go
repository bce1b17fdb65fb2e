package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/pantry"
	"github.com/skilletapp/skillet/internal/store"
	"github.com/skilletapp/skillet/internal/websocket"
)

const expiryDateLayout = "2006-01-02"

type PantryHandler struct {
	store  *store.PantryStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewPantryHandler(s *store.PantryStore, hub *websocket.Hub, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{store: s, hub: hub, logger: logger}
}

// List returns the caller's pantry; ?expiring_within_days=N narrows it to
// items expiring soon.
func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var items []model.PantryItem
	var err error
	if daysStr := r.URL.Query().Get("expiring_within_days"); daysStr != "" {
		days, convErr := strconv.Atoi(daysStr)
		if convErr != nil || days < 0 {
			writeError(w, http.StatusBadRequest, "expiring_within_days must be a non-negative integer")
			return
		}
		items, err = h.store.ListExpiringWithin(userID, days)
	} else {
		items, err = h.store.List(userID)
	}
	if err != nil {
		h.logger.Error("list pantry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list pantry items")
		return
	}
	if items == nil {
		items = []model.PantryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Categories returns the fixed pantry category list for client pickers.
func (h *PantryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pantry.Categories())
}

type pantryItemRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	ExpiresAt string  `json:"expires_at"`
}

// validate normalizes the request, auto-categorizing when no category was
// given. Returns the parsed expiry and an error message.
func (req *pantryItemRequest) validate() (*time.Time, string) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, "name is required"
	}
	if req.Quantity < 0 {
		return nil, "quantity must not be negative"
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Category == "" {
		req.Category = pantry.Categorize(req.Name)
	}
	if req.ExpiresAt == "" {
		return nil, ""
	}
	t, err := time.Parse(expiryDateLayout, req.ExpiresAt)
	if err != nil {
		return nil, "expires_at must be a YYYY-MM-DD date"
	}
	return &t, ""
}

func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req pantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	expiresAt, msg := req.validate()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.Create(userID, req.Name, req.Category, req.Quantity, req.Unit, expiresAt)
	if err != nil {
		h.logger.Error("create pantry item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create pantry item")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("pantry_item", "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *PantryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.store.GetByID(id, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get pantry item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "pantry item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get pantry item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "pantry item not found")
		return
	}

	var req pantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	expiresAt, msg := req.validate()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	item, err := h.store.Update(id, userID, req.Name, req.Category, req.Quantity, req.Unit, expiresAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update pantry item")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("pantry_item", "updated", id, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get pantry item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "pantry item not found")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete pantry item")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("pantry_item", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
