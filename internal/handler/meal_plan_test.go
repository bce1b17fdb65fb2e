package handler

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/store"
)

func setupMealPlanHandler(t *testing.T) (*MealPlanHandler, *sql.DB, int64) {
	t.Helper()
	db, userID := setupDB(t)
	h := NewMealPlanHandler(
		store.NewMealPlanStore(db),
		store.NewRecipeStore(db),
		store.NewPantryStore(db),
		testHub(),
		testLogger(),
	)
	return h, db, userID
}

func TestMealPlanCreateValidation(t *testing.T) {
	h, _, userID := setupMealPlanHandler(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing date", map[string]any{"meal_type": "dinner"}},
		{"bad date", map[string]any{"plan_date": "tomorrow", "meal_type": "dinner"}},
		{"bad meal type", map[string]any{"plan_date": "2026-09-01", "meal_type": "brunch"}},
		{"unknown recipe", map[string]any{"plan_date": "2026-09-01", "meal_type": "dinner", "recipe_id": 9999}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h.Create, http.MethodPost, userID, tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMealPlanDefaultsToDinner(t *testing.T) {
	h, _, userID := setupMealPlanHandler(t)

	rec := doRequest(t, h.Create, http.MethodPost, userID, map[string]any{"plan_date": "2026-09-01"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var plan model.MealPlan
	decodeBody(t, rec, &plan)
	if plan.MealType != model.MealTypeDinner {
		t.Errorf("meal_type = %q, want dinner", plan.MealType)
	}
}

func TestCookDecrementsPantry(t *testing.T) {
	h, db, userID := setupMealPlanHandler(t)

	recipes := store.NewRecipeStore(db)
	recipe, err := recipes.Create(userID, &model.Recipe{
		Name:              "Tomato Pasta",
		Instructions:      []string{"Boil pasta", "Add sauce"},
		IngredientsNeeded: []string{"pasta", "tomatoes"},
		Servings:          2,
		Difficulty:        "easy",
		Source:            model.RecipeSourceManual,
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	pantry := store.NewPantryStore(db)
	if _, err := pantry.Create(userID, "pasta", "Grains", 3, "box", nil); err != nil {
		t.Fatalf("create pantry item: %v", err)
	}

	plans := store.NewMealPlanStore(db)
	plan, err := plans.Create(userID, "2026-09-01", model.MealTypeDinner, &recipe.ID, "")
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	rec := doRequest(t, h.Cook, http.MethodPost, userID, nil, idPath(plan.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("cook status = %d: %s", rec.Code, rec.Body.String())
	}

	var cooked model.MealPlan
	decodeBody(t, rec, &cooked)
	if !cooked.Cooked {
		t.Error("plan not marked cooked")
	}

	items, err := pantry.List(userID)
	if err != nil {
		t.Fatalf("list pantry: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Errorf("pantry after cook = %+v, want pasta quantity 2", items)
	}

	// Cooking twice is rejected.
	rec = doRequest(t, h.Cook, http.MethodPost, userID, nil, idPath(plan.ID))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second cook status = %d, want 400", rec.Code)
	}
}

func TestMealPlanScopedToUser(t *testing.T) {
	h, db, userID := setupMealPlanHandler(t)

	other, err := store.NewUserStore(db).Create("other@example.com", "Other", "hash")
	if err != nil {
		t.Fatalf("seed second user: %v", err)
	}
	plan, err := store.NewMealPlanStore(db).Create(other.ID, "2026-09-02", model.MealTypeLunch, nil, "")
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	rec := doRequest(t, h.Get, http.MethodGet, userID, nil, idPath(plan.ID))
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", rec.Code)
	}
}
