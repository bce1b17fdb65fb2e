package store

import (
	"database/sql"
	"fmt"

	"github.com/skilletapp/skillet/internal/model"
)

type MediaStore struct {
	db *sql.DB
}

func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaCols = `id, user_id, kind, title, creator, status, rating, notes, created_at, updated_at`

func scanMediaItem(scanner interface{ Scan(...any) error }) (*model.MediaItem, error) {
	var m model.MediaItem
	var rating sql.NullInt64
	err := scanner.Scan(&m.ID, &m.UserID, &m.Kind, &m.Title, &m.Creator, &m.Status, &rating, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		r := int(rating.Int64)
		m.Rating = &r
	}
	return &m, nil
}

func (s *MediaStore) Create(userID int64, kind, title, creator, status string, rating *int, notes string) (*model.MediaItem, error) {
	result, err := s.db.Exec(
		`INSERT INTO media_items (user_id, kind, title, creator, status, rating, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, kind, title, creator, status, rating, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert media item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

// List returns a user's media items, optionally filtered by kind.
func (s *MediaStore) List(userID int64, kind string) ([]model.MediaItem, error) {
	query := `SELECT ` + mediaCols + ` FROM media_items WHERE user_id = ?`
	args := []any{userID}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY title`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query media items: %w", err)
	}
	defer rows.Close()

	var items []model.MediaItem
	for rows.Next() {
		m, err := scanMediaItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media item: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (s *MediaStore) GetByID(id, userID int64) (*model.MediaItem, error) {
	row := s.db.QueryRow(`SELECT `+mediaCols+` FROM media_items WHERE id = ? AND user_id = ?`, id, userID)
	m, err := scanMediaItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get media item: %w", err)
	}
	return m, nil
}

func (s *MediaStore) Update(id, userID int64, kind, title, creator, status string, rating *int, notes string) (*model.MediaItem, error) {
	_, err := s.db.Exec(
		`UPDATE media_items SET kind = ?, title = ?, creator = ?, status = ?, rating = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		kind, title, creator, status, rating, notes, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update media item: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *MediaStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM media_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete media item: %w", err)
	}
	return nil
}
