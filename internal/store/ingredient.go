package store

import (
	"database/sql"
	"fmt"

	"github.com/skilletapp/skillet/internal/model"
)

type IngredientStore struct {
	db *sql.DB
}

func NewIngredientStore(db *sql.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

const ingredientCols = `id, user_id, name, category, created_at, updated_at`

func scanIngredient(scanner interface{ Scan(...any) error }) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := scanner.Scan(&ing.ID, &ing.UserID, &ing.Name, &ing.Category, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (s *IngredientStore) Create(userID int64, name, category string) (*model.Ingredient, error) {
	result, err := s.db.Exec(
		`INSERT INTO ingredients (user_id, name, category) VALUES (?, ?, ?)`,
		userID, name, category,
	)
	if err != nil {
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *IngredientStore) List(userID int64) ([]model.Ingredient, error) {
	rows, err := s.db.Query(
		`SELECT `+ingredientCols+` FROM ingredients WHERE user_id = ? ORDER BY category, name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []model.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, *ing)
	}
	return ingredients, rows.Err()
}

func (s *IngredientStore) GetByID(id, userID int64) (*model.Ingredient, error) {
	row := s.db.QueryRow(`SELECT `+ingredientCols+` FROM ingredients WHERE id = ? AND user_id = ?`, id, userID)
	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

func (s *IngredientStore) NameExists(userID int64, name string, excludeID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM ingredients WHERE user_id = ? AND name = ? AND id != ?`,
		userID, name, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check ingredient name: %w", err)
	}
	return count > 0, nil
}

func (s *IngredientStore) Update(id, userID int64, name, category string) (*model.Ingredient, error) {
	_, err := s.db.Exec(
		`UPDATE ingredients SET name = ?, category = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		name, category, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *IngredientStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM ingredients WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
