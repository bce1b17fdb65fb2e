package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/recommend"
	"github.com/skilletapp/skillet/internal/store"
	"github.com/skilletapp/skillet/internal/websocket"
)

const maxSuggestionCount = 10

type RecommendationHandler struct {
	service *recommend.Service
	pantry  *store.PantryStore
	members *store.FamilyMemberStore
	recipes *store.RecipeStore
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewRecommendationHandler(svc *recommend.Service, ps *store.PantryStore, ms *store.FamilyMemberStore, rs *store.RecipeStore, hub *websocket.Hub, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{service: svc, pantry: ps, members: ms, recipes: rs, hub: hub, logger: logger}
}

// Suggest asks the configured AI providers for recipe ideas, seeding the
// prompt with the caller's pantry and the family's dietary restrictions.
func (h *RecommendationHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		MealType          string `json:"meal_type"`
		Count             int    `json:"count"`
		ExtraInstructions string `json:"extra_instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.MealType != "" {
		if _, ok := validMealTypes[req.MealType]; !ok {
			writeError(w, http.StatusBadRequest, "meal_type must be breakfast, lunch, dinner, or snack")
			return
		}
	}
	if req.Count < 0 || req.Count > maxSuggestionCount {
		writeError(w, http.StatusBadRequest, "count must be between 1 and 10")
		return
	}

	items, err := h.pantry.List(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load pantry")
		return
	}
	pantryNames := make([]string, 0, len(items))
	for _, item := range items {
		pantryNames = append(pantryNames, item.Name)
	}

	restrictions, err := h.members.ListRestrictions(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load dietary restrictions")
		return
	}

	suggestions, err := h.service.Suggest(r.Context(), userID, recommend.Request{
		MealType:          req.MealType,
		Count:             req.Count,
		ExtraInstructions: req.ExtraInstructions,
		Pantry:            pantryNames,
		Restrictions:      restrictions,
	})
	if err != nil {
		if err == recommend.ErrNoProviders {
			writeError(w, http.StatusServiceUnavailable, "no recommendation providers configured")
			return
		}
		h.logger.Error("suggest recipes", "user_id", userID, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":  "recommendation providers unavailable",
			"detail": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// Save turns a suggestion the client accepted into a stored recipe.
func (h *RecommendationHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req recommend.Suggestion
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Instructions) == 0 {
		writeError(w, http.StatusBadRequest, "instructions are required")
		return
	}
	if req.Servings <= 0 {
		req.Servings = 4
	}
	if _, ok := validDifficulties[req.Difficulty]; !ok {
		req.Difficulty = "easy"
	}

	recipe, err := h.recipes.Create(userID, &model.Recipe{
		Name:              req.Name,
		Description:       req.Description,
		Instructions:      req.Instructions,
		IngredientsNeeded: req.Ingredients,
		PrepTimeMinutes:   req.PrepTimeMinutes,
		CookTimeMinutes:   req.CookTimeMinutes,
		Servings:          req.Servings,
		Difficulty:        req.Difficulty,
		Cuisine:           req.Cuisine,
		Source:            model.RecipeSourceAI,
		AIProvider:        req.Provider,
	})
	if err != nil {
		h.logger.Error("save suggestion", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save recipe")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("recipe", "created", recipe.ID, nil))
	writeJSON(w, http.StatusCreated, recipe)
}

// InvalidateCache drops the caller's cached suggestions so the next request
// hits the providers again.
func (h *RecommendationHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	if err := h.service.Invalidate(r.Context(), userID); err != nil {
		h.logger.Error("invalidate recommendation cache", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to invalidate cache")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
