package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/store"
	"github.com/skilletapp/skillet/internal/websocket"
)

var validDifficulties = map[string]struct{}{
	"easy":   {},
	"medium": {},
	"hard":   {},
}

type RecipeHandler struct {
	store   *store.RecipeStore
	members *store.FamilyMemberStore
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewRecipeHandler(s *store.RecipeStore, ms *store.FamilyMemberStore, hub *websocket.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{store: s, members: ms, hub: hub, logger: logger}
}

// List returns the caller's recipes. Query params: q (name/description
// substring), tag, difficulty, limit, offset.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.RecipeFilter{
		Query:      q.Get("q"),
		Tag:        q.Get("tag"),
		Difficulty: q.Get("difficulty"),
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		filter.Offset = offset
	}

	recipes, err := h.store.List(auth.UserID(r.Context()), filter)
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

type recipeRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Instructions      []string `json:"instructions"`
	IngredientsNeeded []string `json:"ingredients_needed"`
	Tags              []string `json:"tags"`
	PrepTimeMinutes   int      `json:"prep_time_minutes"`
	CookTimeMinutes   int      `json:"cook_time_minutes"`
	Servings          int      `json:"servings"`
	Difficulty        string   `json:"difficulty"`
	Cuisine           string   `json:"cuisine"`
}

func (req *recipeRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if len(req.Instructions) == 0 {
		return "instructions are required"
	}
	if req.Difficulty == "" {
		req.Difficulty = "easy"
	}
	if _, ok := validDifficulties[req.Difficulty]; !ok {
		return "difficulty must be easy, medium, or hard"
	}
	if req.Servings <= 0 {
		req.Servings = 4
	}
	if req.PrepTimeMinutes < 0 || req.CookTimeMinutes < 0 {
		return "times must not be negative"
	}
	return ""
}

func (req *recipeRequest) toModel() *model.Recipe {
	return &model.Recipe{
		Name:              req.Name,
		Description:       req.Description,
		Instructions:      req.Instructions,
		IngredientsNeeded: req.IngredientsNeeded,
		Tags:              req.Tags,
		PrepTimeMinutes:   req.PrepTimeMinutes,
		CookTimeMinutes:   req.CookTimeMinutes,
		Servings:          req.Servings,
		Difficulty:        req.Difficulty,
		Cuisine:           req.Cuisine,
		Source:            model.RecipeSourceManual,
	}
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	recipe, err := h.store.Create(userID, req.toModel())
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("recipe", "created", recipe.ID, nil))
	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	recipe, err := h.store.GetByID(id, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	update := req.toModel()
	// Source and provenance never change on edit
	update.Source = existing.Source
	update.AIProvider = existing.AIProvider

	recipe, err := h.store.Update(id, userID, update)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update recipe")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("recipe", "updated", id, nil))
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("recipe", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Rate records a family member's rating for a recipe, replacing any earlier
// rating by the same member.
func (h *RecipeHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	recipe, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	var req struct {
		FamilyMemberID int64  `json:"family_member_id"`
		Rating         int    `json:"rating"`
		Comment        string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	member, err := h.members.GetByID(req.FamilyMemberID, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check family member")
		return
	}
	if member == nil {
		writeError(w, http.StatusBadRequest, "family member not found")
		return
	}

	rating, err := h.store.RateRecipe(id, req.FamilyMemberID, req.Rating, req.Comment)
	if err != nil {
		h.logger.Error("rate recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to rate recipe")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("recipe_rating", "created", id, nil))
	writeJSON(w, http.StatusCreated, rating)
}

// Ratings returns a recipe's ratings and their average.
func (h *RecipeHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	recipe, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	ratings, err := h.store.ListRatings(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list ratings")
		return
	}
	if ratings == nil {
		ratings = []model.RecipeRating{}
	}

	average, err := h.store.AverageRating(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute average")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ratings": ratings, "average": average})
}
