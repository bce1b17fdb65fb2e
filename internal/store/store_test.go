package store

import (
	"database/sql"
	"testing"

	"github.com/skilletapp/skillet/internal/database"
)

// setupTestDB opens an in-memory database with all migrations applied and
// seeds a single user to own the fixtures.
func setupTestDB(t *testing.T) (*sql.DB, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	u, err := NewUserStore(db).Create("test@example.com", "Test", "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return db, u.ID
}
