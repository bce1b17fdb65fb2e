package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/store"
	"github.com/skilletapp/skillet/internal/websocket"
)

const planDateLayout = "2006-01-02"

var validMealTypes = map[string]struct{}{
	model.MealTypeBreakfast: {},
	model.MealTypeLunch:     {},
	model.MealTypeDinner:    {},
	model.MealTypeSnack:     {},
}

type MealPlanHandler struct {
	store   *store.MealPlanStore
	recipes *store.RecipeStore
	pantry  *store.PantryStore
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewMealPlanHandler(s *store.MealPlanStore, rs *store.RecipeStore, ps *store.PantryStore, hub *websocket.Hub, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{store: s, recipes: rs, pantry: ps, hub: hub, logger: logger}
}

// List returns the caller's meal plans; ?from= and ?to= bound the date range.
func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")

	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(planDateLayout, d); err != nil {
			writeError(w, http.StatusBadRequest, "from and to must be YYYY-MM-DD dates")
			return
		}
	}

	plans, err := h.store.List(auth.UserID(r.Context()), from, to)
	if err != nil {
		h.logger.Error("list meal plans", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list meal plans")
		return
	}
	if plans == nil {
		plans = []model.MealPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

type mealPlanRequest struct {
	PlanDate string `json:"plan_date"`
	MealType string `json:"meal_type"`
	RecipeID *int64 `json:"recipe_id"`
	Notes    string `json:"notes"`
}

func (req *mealPlanRequest) validate() string {
	if _, err := time.Parse(planDateLayout, req.PlanDate); err != nil {
		return "plan_date must be a YYYY-MM-DD date"
	}
	if req.MealType == "" {
		req.MealType = model.MealTypeDinner
	}
	if _, ok := validMealTypes[req.MealType]; !ok {
		return "meal_type must be breakfast, lunch, dinner, or snack"
	}
	return ""
}

// checkRecipe verifies a referenced recipe exists and belongs to the caller.
func (h *MealPlanHandler) checkRecipe(userID int64, recipeID *int64) (string, error) {
	if recipeID == nil {
		return "", nil
	}
	recipe, err := h.recipes.GetByID(*recipeID, userID)
	if err != nil {
		return "", err
	}
	if recipe == nil {
		return "recipe not found", nil
	}
	return "", nil
}

func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	msg, err := h.checkRecipe(userID, req.RecipeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check recipe")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	plan, err := h.store.Create(userID, req.PlanDate, req.MealType, req.RecipeID, req.Notes)
	if err != nil {
		h.logger.Error("create meal plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create meal plan")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("meal_plan", "created", plan.ID, nil))
	writeJSON(w, http.StatusCreated, plan)
}

func (h *MealPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	plan, err := h.store.GetByID(id, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get meal plan")
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *MealPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get meal plan")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}

	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	msg, err := h.checkRecipe(userID, req.RecipeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check recipe")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	plan, err := h.store.Update(id, userID, req.PlanDate, req.MealType, req.RecipeID, req.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update meal plan")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("meal_plan", "updated", id, nil))
	writeJSON(w, http.StatusOK, plan)
}

// Cook marks a plan cooked and deducts the recipe's ingredients from the
// pantry by name. Missing pantry entries are skipped, not errors.
func (h *MealPlanHandler) Cook(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get meal plan")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}
	if existing.Cooked {
		writeError(w, http.StatusBadRequest, "meal is already marked cooked")
		return
	}

	if existing.RecipeID != nil {
		recipe, err := h.recipes.GetByID(*existing.RecipeID, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get recipe")
			return
		}
		if recipe != nil {
			for _, name := range recipe.IngredientsNeeded {
				if _, err := h.pantry.DecrementByName(userID, name, 1); err != nil {
					h.logger.Error("decrement pantry", "ingredient", name, "error", err)
				}
			}
		}
	}

	plan, err := h.store.MarkCooked(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mark cooked")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("meal_plan", "cooked", id, nil))
	h.hub.Broadcast(userID, websocket.NewMessage("pantry_item", "updated", 0, nil))
	writeJSON(w, http.StatusOK, plan)
}

func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.store.GetByID(id, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get meal plan")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete meal plan")
		return
	}

	h.hub.Broadcast(userID, websocket.NewMessage("meal_plan", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
