package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/pantry"
	"github.com/skilletapp/skillet/internal/store"
)

type IngredientHandler struct {
	store  *store.IngredientStore
	logger *slog.Logger
}

func NewIngredientHandler(s *store.IngredientStore, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{store: s, logger: logger}
}

func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.store.List(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list ingredients", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list ingredients")
		return
	}
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Category == "" {
		req.Category = pantry.Categorize(req.Name)
	}

	exists, err := h.store.NameExists(userID, req.Name, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check name")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "an ingredient with that name already exists")
		return
	}

	ingredient, err := h.store.Create(userID, req.Name, req.Category)
	if err != nil {
		h.logger.Error("create ingredient", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create ingredient")
		return
	}

	writeJSON(w, http.StatusCreated, ingredient)
}

func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get ingredient")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "ingredient not found")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Category == "" {
		req.Category = existing.Category
	}

	exists, err := h.store.NameExists(userID, req.Name, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check name")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "an ingredient with that name already exists")
		return
	}

	ingredient, err := h.store.Update(id, userID, req.Name, req.Category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update ingredient")
		return
	}

	writeJSON(w, http.StatusOK, ingredient)
}

func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get ingredient")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "ingredient not found")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete ingredient")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
