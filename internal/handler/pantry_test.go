package handler

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/store"
)

func setupPantryHandler(t *testing.T) (*PantryHandler, *sql.DB, int64) {
	t.Helper()
	db, userID := setupDB(t)
	return NewPantryHandler(store.NewPantryStore(db), testHub(), testLogger()), db, userID
}

func TestPantryCreateAutoCategorizes(t *testing.T) {
	h, _, userID := setupPantryHandler(t)

	rec := doRequest(t, h.Create, http.MethodPost, userID, map[string]any{"name": "milk"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var item model.PantryItem
	decodeBody(t, rec, &item)
	if item.Category == "" || item.Category == "Other" {
		t.Errorf("category = %q, want auto-categorized", item.Category)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %v, want default 1", item.Quantity)
	}
}

func TestPantryCreateValidation(t *testing.T) {
	h, _, userID := setupPantryHandler(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"quantity": 1}},
		{"negative quantity", map[string]any{"name": "salt", "quantity": -2}},
		{"bad expiry", map[string]any{"name": "salt", "expires_at": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h.Create, http.MethodPost, userID, tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestPantryListExpiringFilter(t *testing.T) {
	h, db, userID := setupPantryHandler(t)

	ps := store.NewPantryStore(db)
	soon := timeDaysFromNow(1)
	later := timeDaysFromNow(30)
	if _, err := ps.Create(userID, "yogurt", "Dairy", 1, "", &soon); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ps.Create(userID, "rice", "Grains", 1, "", &later); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := doRequestWithQuery(t, h.List, userID, "expiring_within_days=3")
	if req.Code != http.StatusOK {
		t.Fatalf("status = %d", req.Code)
	}
	var items []model.PantryItem
	decodeBody(t, req, &items)
	if len(items) != 1 || items[0].Name != "yogurt" {
		t.Errorf("expiring items = %+v, want only yogurt", items)
	}

	req = doRequestWithQuery(t, h.List, userID, "expiring_within_days=-1")
	if req.Code != http.StatusBadRequest {
		t.Errorf("negative window status = %d, want 400", req.Code)
	}
}
