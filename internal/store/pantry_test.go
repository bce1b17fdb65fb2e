package store

import (
	"testing"
	"time"
)

func TestPantryItemCRUD(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPantryStore(db)

	item, err := ps.Create(userID, "Rice", "Grains & Pasta", 2, "kg", nil)
	if err != nil {
		t.Fatalf("create pantry item: %v", err)
	}
	if item.Name != "Rice" {
		t.Errorf("name = %q, want %q", item.Name, "Rice")
	}
	if item.Quantity != 2 {
		t.Errorf("quantity = %v, want 2", item.Quantity)
	}
	if item.ExpiresAt != nil {
		t.Errorf("expires_at = %v, want nil", item.ExpiresAt)
	}

	updated, err := ps.Update(item.ID, userID, "Brown Rice", "Grains & Pasta", 1.5, "kg", nil)
	if err != nil {
		t.Fatalf("update pantry item: %v", err)
	}
	if updated.Name != "Brown Rice" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Brown Rice")
	}
	if updated.Quantity != 1.5 {
		t.Errorf("updated quantity = %v, want 1.5", updated.Quantity)
	}

	if err := ps.Delete(item.ID, userID); err != nil {
		t.Fatalf("delete pantry item: %v", err)
	}
	got, err := ps.GetByID(item.ID, userID)
	if err != nil {
		t.Fatalf("get deleted item: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted item")
	}
}

func TestPantryListExpiringWithin(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPantryStore(db)

	soon := time.Now().UTC().AddDate(0, 0, 2)
	later := time.Now().UTC().AddDate(0, 0, 30)

	ps.Create(userID, "Milk", "Dairy & Eggs", 1, "l", &soon)
	ps.Create(userID, "Canned Beans", "Canned & Jarred", 3, "cans", &later)
	ps.Create(userID, "Salt", "Spices & Condiments", 1, "box", nil)

	items, err := ps.ListExpiringWithin(userID, 7)
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 expiring item, got %d", len(items))
	}
	if items[0].Name != "Milk" {
		t.Errorf("expiring item = %q, want %q", items[0].Name, "Milk")
	}
}

func TestPantryDecrementByName(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPantryStore(db)

	item, _ := ps.Create(userID, "Eggs", "Dairy & Eggs", 6, "", nil)

	found, err := ps.DecrementByName(userID, "eggs", 2)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !found {
		t.Fatal("expected item to be found")
	}

	got, _ := ps.GetByID(item.ID, userID)
	if got.Quantity != 4 {
		t.Errorf("quantity = %v, want 4", got.Quantity)
	}

	// Decrementing to zero removes the item
	found, err = ps.DecrementByName(userID, "Eggs", 10)
	if err != nil {
		t.Fatalf("decrement to zero: %v", err)
	}
	if !found {
		t.Fatal("expected item to be found")
	}
	got, _ = ps.GetByID(item.ID, userID)
	if got != nil {
		t.Error("expected item removed once depleted")
	}
}

func TestPantryDecrementMissing(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPantryStore(db)

	found, err := ps.DecrementByName(userID, "unobtainium", 1)
	if err != nil {
		t.Fatalf("decrement missing: %v", err)
	}
	if found {
		t.Error("expected found = false for missing item")
	}
}

func TestIngredientCRUD(t *testing.T) {
	db, userID := setupTestDB(t)
	is := NewIngredientStore(db)

	ing, err := is.Create(userID, "Olive Oil", "Spices & Condiments")
	if err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	if ing.Category != "Spices & Condiments" {
		t.Errorf("category = %q, want %q", ing.Category, "Spices & Condiments")
	}

	exists, err := is.NameExists(userID, "Olive Oil", 0)
	if err != nil {
		t.Fatalf("name exists: %v", err)
	}
	if !exists {
		t.Error("expected ingredient name to exist")
	}

	updated, err := is.Update(ing.ID, userID, "Extra Virgin Olive Oil", "Spices & Condiments")
	if err != nil {
		t.Fatalf("update ingredient: %v", err)
	}
	if updated.Name != "Extra Virgin Olive Oil" {
		t.Errorf("updated name = %q", updated.Name)
	}

	if err := is.Delete(ing.ID, userID); err != nil {
		t.Fatalf("delete ingredient: %v", err)
	}
	got, _ := is.GetByID(ing.ID, userID)
	if got != nil {
		t.Error("expected nil for deleted ingredient")
	}
}
