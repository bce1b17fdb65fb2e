package model

import "time"

// Meal type values for meal plans.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

type MealPlan struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	PlanDate   string    `json:"plan_date"`
	MealType   string    `json:"meal_type"`
	RecipeID   *int64    `json:"recipe_id,omitempty"`
	RecipeName string    `json:"recipe_name,omitempty"`
	Notes      string    `json:"notes"`
	Cooked     bool      `json:"cooked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
