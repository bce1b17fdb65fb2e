package store

import (
	"testing"

	"github.com/skilletapp/skillet/internal/model"
)

func TestMediaItemCRUD(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMediaStore(db)

	m, err := ms.Create(userID, model.MediaKindBook, "Dune", "Frank Herbert", model.MediaStatusWant, nil, "")
	if err != nil {
		t.Fatalf("create media item: %v", err)
	}
	if m.Title != "Dune" {
		t.Errorf("title = %q, want %q", m.Title, "Dune")
	}
	if m.Rating != nil {
		t.Errorf("rating = %v, want nil", *m.Rating)
	}

	rating := 5
	updated, err := ms.Update(m.ID, userID, model.MediaKindBook, "Dune", "Frank Herbert", model.MediaStatusFinished, &rating, "great worldbuilding")
	if err != nil {
		t.Fatalf("update media item: %v", err)
	}
	if updated.Status != model.MediaStatusFinished {
		t.Errorf("status = %q, want %q", updated.Status, model.MediaStatusFinished)
	}
	if updated.Rating == nil || *updated.Rating != 5 {
		t.Errorf("rating = %v, want 5", updated.Rating)
	}

	if err := ms.Delete(m.ID, userID); err != nil {
		t.Fatalf("delete media item: %v", err)
	}
	got, _ := ms.GetByID(m.ID, userID)
	if got != nil {
		t.Error("expected nil for deleted item")
	}
}

func TestMediaListByKind(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMediaStore(db)

	ms.Create(userID, model.MediaKindBook, "Dune", "Frank Herbert", model.MediaStatusWant, nil, "")
	ms.Create(userID, model.MediaKindMovie, "Alien", "Ridley Scott", model.MediaStatusFinished, nil, "")
	ms.Create(userID, model.MediaKindTV, "Severance", "", model.MediaStatusInProgress, nil, "")

	items, err := ms.List(userID, model.MediaKindMovie)
	if err != nil {
		t.Fatalf("list movies: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Alien" {
		t.Errorf("movies = %v, want Alien", items)
	}

	items, _ = ms.List(userID, "")
	if len(items) != 3 {
		t.Errorf("all items count = %d, want 3", len(items))
	}
}

func TestMediaScopedToUser(t *testing.T) {
	db, userID := setupTestDB(t)
	ms := NewMediaStore(db)
	us := NewUserStore(db)

	other, _ := us.Create("other@example.com", "Other", "h")

	m, _ := ms.Create(userID, model.MediaKindBook, "Dune", "Frank Herbert", model.MediaStatusWant, nil, "")

	got, err := ms.GetByID(m.ID, other.ID)
	if err != nil {
		t.Fatalf("cross-user get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for cross-user access")
	}
}
