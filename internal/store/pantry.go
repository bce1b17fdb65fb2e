package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skilletapp/skillet/internal/model"
)

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

const pantryCols = `id, user_id, name, category, quantity, unit, expires_at, created_at, updated_at`

func scanPantryItem(scanner interface{ Scan(...any) error }) (*model.PantryItem, error) {
	var item model.PantryItem
	var expiresAt sql.NullTime
	err := scanner.Scan(&item.ID, &item.UserID, &item.Name, &item.Category, &item.Quantity, &item.Unit, &expiresAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		item.ExpiresAt = &expiresAt.Time
	}
	return &item, nil
}

func (s *PantryStore) Create(userID int64, name, category string, quantity float64, unit string, expiresAt *time.Time) (*model.PantryItem, error) {
	result, err := s.db.Exec(
		`INSERT INTO pantry_items (user_id, name, category, quantity, unit, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, category, quantity, unit, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pantry item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *PantryStore) List(userID int64) ([]model.PantryItem, error) {
	rows, err := s.db.Query(
		`SELECT `+pantryCols+` FROM pantry_items WHERE user_id = ? ORDER BY category, name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query pantry items: %w", err)
	}
	defer rows.Close()
	return collectPantryItems(rows)
}

// ListExpiringWithin returns pantry items that expire within the given number
// of days, soonest first. Items with no expiry are excluded.
func (s *PantryStore) ListExpiringWithin(userID int64, days int) ([]model.PantryItem, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, days)
	rows, err := s.db.Query(
		`SELECT `+pantryCols+` FROM pantry_items
		 WHERE user_id = ? AND expires_at IS NOT NULL AND expires_at <= ?
		 ORDER BY expires_at`,
		userID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("query expiring pantry items: %w", err)
	}
	defer rows.Close()
	return collectPantryItems(rows)
}

func (s *PantryStore) GetByID(id, userID int64) (*model.PantryItem, error) {
	row := s.db.QueryRow(`SELECT `+pantryCols+` FROM pantry_items WHERE id = ? AND user_id = ?`, id, userID)
	item, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item: %w", err)
	}
	return item, nil
}

func (s *PantryStore) Update(id, userID int64, name, category string, quantity float64, unit string, expiresAt *time.Time) (*model.PantryItem, error) {
	_, err := s.db.Exec(
		`UPDATE pantry_items SET name = ?, category = ?, quantity = ?, unit = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		name, category, quantity, unit, expiresAt, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update pantry item: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *PantryStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM pantry_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}
	return nil
}

// DecrementByName reduces the quantity of the user's pantry item matching the
// given name (case-insensitive). The item is removed once its quantity reaches
// zero. Returns false if no matching item exists.
func (s *PantryStore) DecrementByName(userID int64, name string, amount float64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	var quantity float64
	err = tx.QueryRow(
		`SELECT id, quantity FROM pantry_items WHERE user_id = ? AND name = ? COLLATE NOCASE LIMIT 1`,
		userID, name,
	).Scan(&id, &quantity)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find pantry item: %w", err)
	}

	remaining := quantity - amount
	if remaining <= 0 {
		if _, err := tx.Exec(`DELETE FROM pantry_items WHERE id = ?`, id); err != nil {
			return false, fmt.Errorf("remove depleted pantry item: %w", err)
		}
	} else {
		if _, err := tx.Exec(
			`UPDATE pantry_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			remaining, id,
		); err != nil {
			return false, fmt.Errorf("decrement pantry item: %w", err)
		}
	}

	return true, tx.Commit()
}

// ListUserIDs returns distinct user IDs that have pantry items.
func (s *PantryStore) ListUserIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT DISTINCT user_id FROM pantry_items`)
	if err != nil {
		return nil, fmt.Errorf("list pantry user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func collectPantryItems(rows *sql.Rows) ([]model.PantryItem, error) {
	var items []model.PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
