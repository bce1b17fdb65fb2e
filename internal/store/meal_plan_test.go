package store

import (
	"testing"

	"github.com/skilletapp/skillet/internal/model"
)

func TestMealPlanCRUD(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMealPlanStore(db)
	rs := NewRecipeStore(db)

	r, _ := rs.Create(userID, testRecipe("Chili"))

	p, err := ms.Create(userID, "2026-09-01", model.MealTypeDinner, &r.ID, "double batch")
	if err != nil {
		t.Fatalf("create meal plan: %v", err)
	}
	if p.PlanDate != "2026-09-01" {
		t.Errorf("plan_date = %q, want %q", p.PlanDate, "2026-09-01")
	}
	if p.RecipeName != "Chili" {
		t.Errorf("recipe_name = %q, want %q (joined from recipes)", p.RecipeName, "Chili")
	}
	if p.Cooked {
		t.Error("new plan should not be cooked")
	}

	updated, err := ms.Update(p.ID, userID, "2026-09-02", model.MealTypeLunch, nil, "")
	if err != nil {
		t.Fatalf("update meal plan: %v", err)
	}
	if updated.MealType != model.MealTypeLunch {
		t.Errorf("meal_type = %q, want %q", updated.MealType, model.MealTypeLunch)
	}
	if updated.RecipeID != nil {
		t.Errorf("recipe_id = %v, want nil", *updated.RecipeID)
	}
	if updated.RecipeName != "" {
		t.Errorf("recipe_name = %q, want empty without recipe", updated.RecipeName)
	}

	if err := ms.Delete(p.ID, userID); err != nil {
		t.Fatalf("delete meal plan: %v", err)
	}
	got, _ := ms.GetByID(p.ID, userID)
	if got != nil {
		t.Error("expected nil for deleted plan")
	}
}

func TestMealPlanListRange(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMealPlanStore(db)

	ms.Create(userID, "2026-09-01", model.MealTypeDinner, nil, "")
	ms.Create(userID, "2026-09-03", model.MealTypeDinner, nil, "")
	ms.Create(userID, "2026-09-10", model.MealTypeBreakfast, nil, "")

	plans, err := ms.List(userID, "2026-09-01", "2026-09-05")
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("range count = %d, want 2", len(plans))
	}
	if plans[0].PlanDate != "2026-09-01" || plans[1].PlanDate != "2026-09-03" {
		t.Errorf("range dates = %q, %q", plans[0].PlanDate, plans[1].PlanDate)
	}

	// Open-ended lower bound
	plans, _ = ms.List(userID, "", "2026-09-03")
	if len(plans) != 2 {
		t.Errorf("open-start count = %d, want 2", len(plans))
	}

	// No bounds returns everything
	plans, _ = ms.List(userID, "", "")
	if len(plans) != 3 {
		t.Errorf("unbounded count = %d, want 3", len(plans))
	}
}

func TestMealPlanListForDate(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMealPlanStore(db)

	ms.Create(userID, "2026-09-01", model.MealTypeBreakfast, nil, "")
	ms.Create(userID, "2026-09-01", model.MealTypeDinner, nil, "")
	ms.Create(userID, "2026-09-02", model.MealTypeDinner, nil, "")

	plans, err := ms.ListForDate(userID, "2026-09-01", "")
	if err != nil {
		t.Fatalf("list for date: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("date count = %d, want 2", len(plans))
	}

	plans, _ = ms.ListForDate(userID, "2026-09-01", model.MealTypeDinner)
	if len(plans) != 1 || plans[0].MealType != model.MealTypeDinner {
		t.Errorf("filtered plans = %v, want one dinner", plans)
	}
}

func TestMealPlanMarkCooked(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMealPlanStore(db)

	p, _ := ms.Create(userID, "2026-09-01", model.MealTypeDinner, nil, "")

	cooked, err := ms.MarkCooked(p.ID, userID)
	if err != nil {
		t.Fatalf("mark cooked: %v", err)
	}
	if !cooked.Cooked {
		t.Error("plan should be cooked")
	}
}

func TestMealPlanDeleteRecipeNullsReference(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMealPlanStore(db)
	rs := NewRecipeStore(db)

	r, _ := rs.Create(userID, testRecipe("Chili"))
	p, _ := ms.Create(userID, "2026-09-01", model.MealTypeDinner, &r.ID, "")

	if err := rs.Delete(r.ID, userID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}

	got, _ := ms.GetByID(p.ID, userID)
	if got == nil {
		t.Fatal("plan should survive recipe delete")
	}
	if got.RecipeID != nil {
		t.Errorf("recipe_id = %v, want nil after recipe delete", *got.RecipeID)
	}
}
