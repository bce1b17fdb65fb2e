package model

import "time"

// Age group values for family members.
const (
	AgeGroupAdult = "adult"
	AgeGroupTeen  = "teen"
	AgeGroupChild = "child"
)

type FamilyMember struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	Name                string    `json:"name"`
	AgeGroup            string    `json:"age_group"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	FavoriteFoods       []string  `json:"favorite_foods"`
	SortOrder           int       `json:"sort_order"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
