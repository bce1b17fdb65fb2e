package model

import "time"

// Recipe source values.
const (
	RecipeSourceManual = "manual"
	RecipeSourceAI     = "ai"
)

type Recipe struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Instructions      []string  `json:"instructions"`
	IngredientsNeeded []string  `json:"ingredients_needed"`
	Tags              []string  `json:"tags"`
	PrepTimeMinutes   int       `json:"prep_time_minutes"`
	CookTimeMinutes   int       `json:"cook_time_minutes"`
	Servings          int       `json:"servings"`
	Difficulty        string    `json:"difficulty"`
	Cuisine           string    `json:"cuisine"`
	Source            string    `json:"source"`
	AIProvider        string    `json:"ai_provider,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type RecipeRating struct {
	ID             int64     `json:"id"`
	RecipeID       int64     `json:"recipe_id"`
	FamilyMemberID *int64    `json:"family_member_id"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
