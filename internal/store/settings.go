package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AllowedSettingKeys is the set of per-user settings the API accepts.
var AllowedSettingKeys = map[string]struct{}{
	"reminder_hour":    {},
	"provider_order":   {},
	"default_servings": {},
	"backup_enabled":   {},
	"backup_hour":      {},
	"backup_salt":      {},
}

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value for a user's setting, or "" if unset.
func (s *SettingsStore) Get(userID int64, key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM user_settings WHERE user_id = ? AND key = ?`, userID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SettingsStore) GetAll(userID int64) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM user_settings WHERE user_id = ? ORDER BY key`, userID)
	if err != nil {
		return nil, fmt.Errorf("get all settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (s *SettingsStore) Set(userID int64, key, value string) error {
	if _, ok := AllowedSettingKeys[key]; !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	_, err := s.db.Exec(
		`INSERT INTO user_settings (user_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		userID, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetInt returns a numeric setting, or the fallback if unset or malformed.
func (s *SettingsStore) GetInt(userID int64, key string, fallback int) (int, error) {
	value, err := s.Get(userID, key)
	if err != nil {
		return fallback, err
	}
	if value == "" {
		return fallback, nil
	}
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return fallback, nil
	}
	return n, nil
}
