package store

import (
	"database/sql"
	"fmt"

	"github.com/skilletapp/skillet/internal/model"
)

type MealPlanStore struct {
	db *sql.DB
}

func NewMealPlanStore(db *sql.DB) *MealPlanStore {
	return &MealPlanStore{db: db}
}

func scanMealPlan(scanner interface{ Scan(...any) error }) (*model.MealPlan, error) {
	var p model.MealPlan
	var recipeID sql.NullInt64
	var recipeName sql.NullString
	err := scanner.Scan(&p.ID, &p.UserID, &p.PlanDate, &p.MealType, &recipeID, &recipeName, &p.Notes, &p.Cooked, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if recipeID.Valid {
		p.RecipeID = &recipeID.Int64
	}
	p.RecipeName = recipeName.String
	return &p, nil
}

// mealPlanQuery joins recipes so listings carry recipe names in one query.
const mealPlanQuery = `SELECT mp.id, mp.user_id, mp.plan_date, mp.meal_type, mp.recipe_id, r.name,
	mp.notes, mp.cooked, mp.created_at, mp.updated_at
	FROM meal_plans mp LEFT JOIN recipes r ON r.id = mp.recipe_id`

func (s *MealPlanStore) Create(userID int64, planDate, mealType string, recipeID *int64, notes string) (*model.MealPlan, error) {
	result, err := s.db.Exec(
		`INSERT INTO meal_plans (user_id, plan_date, meal_type, recipe_id, notes) VALUES (?, ?, ?, ?, ?)`,
		userID, planDate, mealType, recipeID, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert meal plan: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

// List returns meal plans in the inclusive [from, to] date range. Empty
// bounds are open-ended.
func (s *MealPlanStore) List(userID int64, from, to string) ([]model.MealPlan, error) {
	query := mealPlanQuery + ` WHERE mp.user_id = ?`
	args := []any{userID}
	if from != "" {
		query += ` AND mp.plan_date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND mp.plan_date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY mp.plan_date, mp.meal_type`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query meal plans: %w", err)
	}
	defer rows.Close()

	var plans []model.MealPlan
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// ListForDate returns a user's plans for a single date, optionally filtered
// by meal type.
func (s *MealPlanStore) ListForDate(userID int64, planDate, mealType string) ([]model.MealPlan, error) {
	query := mealPlanQuery + ` WHERE mp.user_id = ? AND mp.plan_date = ?`
	args := []any{userID, planDate}
	if mealType != "" {
		query += ` AND mp.meal_type = ?`
		args = append(args, mealType)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query meal plans for date: %w", err)
	}
	defer rows.Close()

	var plans []model.MealPlan
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (s *MealPlanStore) GetByID(id, userID int64) (*model.MealPlan, error) {
	row := s.db.QueryRow(mealPlanQuery+` WHERE mp.id = ? AND mp.user_id = ?`, id, userID)
	p, err := scanMealPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal plan: %w", err)
	}
	return p, nil
}

func (s *MealPlanStore) Update(id, userID int64, planDate, mealType string, recipeID *int64, notes string) (*model.MealPlan, error) {
	_, err := s.db.Exec(
		`UPDATE meal_plans SET plan_date = ?, meal_type = ?, recipe_id = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		planDate, mealType, recipeID, notes, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update meal plan: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *MealPlanStore) MarkCooked(id, userID int64) (*model.MealPlan, error) {
	_, err := s.db.Exec(
		`UPDATE meal_plans SET cooked = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark meal plan cooked: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *MealPlanStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM meal_plans WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete meal plan: %w", err)
	}
	return nil
}
