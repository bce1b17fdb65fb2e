package store

import (
	"database/sql"
	"fmt"

	"github.com/skilletapp/skillet/internal/model"
)

const (
	DefaultRecipeLimit = 50
	MaxRecipeLimit     = 200
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

const recipeCols = `id, user_id, name, description, instructions, ingredients_needed, tags,
	prep_time_minutes, cook_time_minutes, servings, difficulty, cuisine, source, ai_provider,
	created_at, updated_at`

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var instructions, ingredients, tags string
	err := scanner.Scan(
		&r.ID, &r.UserID, &r.Name, &r.Description, &instructions, &ingredients, &tags,
		&r.PrepTimeMinutes, &r.CookTimeMinutes, &r.Servings, &r.Difficulty, &r.Cuisine,
		&r.Source, &r.AIProvider, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Instructions = unmarshalStrings(instructions)
	r.IngredientsNeeded = unmarshalStrings(ingredients)
	r.Tags = unmarshalStrings(tags)
	return &r, nil
}

// RecipeFilter narrows List results. Zero values mean "no filter".
type RecipeFilter struct {
	Query      string
	Tag        string
	Difficulty string
	Limit      int
	Offset     int
}

func (s *RecipeStore) Create(userID int64, r *model.Recipe) (*model.Recipe, error) {
	result, err := s.db.Exec(
		`INSERT INTO recipes (user_id, name, description, instructions, ingredients_needed, tags,
		 prep_time_minutes, cook_time_minutes, servings, difficulty, cuisine, source, ai_provider)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, r.Name, r.Description, marshalStrings(r.Instructions), marshalStrings(r.IngredientsNeeded),
		marshalStrings(r.Tags), r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings, r.Difficulty,
		r.Cuisine, r.Source, r.AIProvider,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *RecipeStore) List(userID int64, f RecipeFilter) ([]model.Recipe, error) {
	query := `SELECT ` + recipeCols + ` FROM recipes WHERE user_id = ?`
	args := []any{userID}

	if f.Query != "" {
		query += ` AND (name LIKE ? OR description LIKE ?)`
		like := "%" + f.Query + "%"
		args = append(args, like, like)
	}
	if f.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		query += ` AND tags LIKE ?`
		args = append(args, `%"`+f.Tag+`"%`)
	}
	if f.Difficulty != "" {
		query += ` AND difficulty = ?`
		args = append(args, f.Difficulty)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultRecipeLimit
	}
	if limit > MaxRecipeLimit {
		limit = MaxRecipeLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	query += ` ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

func (s *RecipeStore) GetByID(id, userID int64) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ? AND user_id = ?`, id, userID)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

func (s *RecipeStore) Update(id, userID int64, r *model.Recipe) (*model.Recipe, error) {
	_, err := s.db.Exec(
		`UPDATE recipes SET name = ?, description = ?, instructions = ?, ingredients_needed = ?, tags = ?,
		 prep_time_minutes = ?, cook_time_minutes = ?, servings = ?, difficulty = ?, cuisine = ?,
		 updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		r.Name, r.Description, marshalStrings(r.Instructions), marshalStrings(r.IngredientsNeeded),
		marshalStrings(r.Tags), r.PrepTimeMinutes, r.CookTimeMinutes, r.Servings, r.Difficulty,
		r.Cuisine, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *RecipeStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// RateRecipe upserts a rating: one rating per family member per recipe.
func (s *RecipeStore) RateRecipe(recipeID, familyMemberID int64, rating int, comment string) (*model.RecipeRating, error) {
	_, err := s.db.Exec(
		`INSERT INTO recipe_ratings (recipe_id, family_member_id, rating, comment)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(recipe_id, family_member_id) DO UPDATE SET
		 rating = excluded.rating, comment = excluded.comment, updated_at = CURRENT_TIMESTAMP`,
		recipeID, familyMemberID, rating, comment,
	)
	if err != nil {
		return nil, fmt.Errorf("rate recipe: %w", err)
	}

	var rr model.RecipeRating
	var memberID sql.NullInt64
	err = s.db.QueryRow(
		`SELECT id, recipe_id, family_member_id, rating, comment, created_at, updated_at
		 FROM recipe_ratings WHERE recipe_id = ? AND family_member_id = ?`,
		recipeID, familyMemberID,
	).Scan(&rr.ID, &rr.RecipeID, &memberID, &rr.Rating, &rr.Comment, &rr.CreatedAt, &rr.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get recipe rating: %w", err)
	}
	if memberID.Valid {
		rr.FamilyMemberID = &memberID.Int64
	}
	return &rr, nil
}

func (s *RecipeStore) ListRatings(recipeID int64) ([]model.RecipeRating, error) {
	rows, err := s.db.Query(
		`SELECT id, recipe_id, family_member_id, rating, comment, created_at, updated_at
		 FROM recipe_ratings WHERE recipe_id = ? ORDER BY created_at`,
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipe ratings: %w", err)
	}
	defer rows.Close()

	var ratings []model.RecipeRating
	for rows.Next() {
		var rr model.RecipeRating
		var memberID sql.NullInt64
		if err := rows.Scan(&rr.ID, &rr.RecipeID, &memberID, &rr.Rating, &rr.Comment, &rr.CreatedAt, &rr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe rating: %w", err)
		}
		if memberID.Valid {
			rr.FamilyMemberID = &memberID.Int64
		}
		ratings = append(ratings, rr)
	}
	return ratings, rows.Err()
}

// AverageRating returns the mean rating for a recipe, or 0 if unrated.
func (s *RecipeStore) AverageRating(recipeID int64) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(`SELECT AVG(rating) FROM recipe_ratings WHERE recipe_id = ?`, recipeID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
