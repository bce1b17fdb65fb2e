package handler

import (
	"net/http"
	"testing"

	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/store"
)

const testJWTSecret = "test-secret-0123456789"

func setupAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db, _ := setupDB(t)
	return NewAuthHandler(store.NewUserStore(db), testJWTSecret, testLogger())
}

func TestRegisterAndLogin(t *testing.T) {
	h := setupAuthHandler(t)

	rec := doRequest(t, h.Register, http.MethodPost, 0, map[string]string{
		"email":    "Alice@Example.com",
		"password": "hunter2hunter2",
		"name":     "Alice",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	decodeBody(t, rec, &created)
	if created.Token == "" {
		t.Error("expected a token")
	}
	if created.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", created.User.Email)
	}

	rec = doRequest(t, h.Login, http.MethodPost, 0, map[string]string{
		"email":    "alice@example.com",
		"password": "hunter2hunter2",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	h := setupAuthHandler(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"password": "hunter2hunter2"}},
		{"bad email", map[string]string{"email": "not-an-email", "password": "hunter2hunter2"}},
		{"short password", map[string]string{"email": "bob@example.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h.Register, http.MethodPost, 0, tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := setupAuthHandler(t)

	body := map[string]string{"email": "dup@example.com", "password": "hunter2hunter2", "name": "Dup"}
	if rec := doRequest(t, h.Register, http.MethodPost, 0, body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}

	rec := doRequest(t, h.Register, http.MethodPost, 0, body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", rec.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := setupAuthHandler(t)

	body := map[string]string{"email": "carol@example.com", "password": "hunter2hunter2", "name": "Carol"}
	if rec := doRequest(t, h.Register, http.MethodPost, 0, body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	rec := doRequest(t, h.Login, http.MethodPost, 0, map[string]string{
		"email":    "carol@example.com",
		"password": "wrong-password",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	// Unknown emails get the same response as wrong passwords.
	rec = doRequest(t, h.Login, http.MethodPost, 0, map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter2hunter2",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want 401", rec.Code)
	}
}

func TestMe(t *testing.T) {
	db, userID := setupDB(t)
	h := NewAuthHandler(store.NewUserStore(db), testJWTSecret, testLogger())

	rec := doRequest(t, h.Me, http.MethodGet, userID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}

	var user model.User
	decodeBody(t, rec, &user)
	if user.ID != userID {
		t.Errorf("user ID = %d, want %d", user.ID, userID)
	}
	if user.Email != "test@example.com" {
		t.Errorf("email = %q", user.Email)
	}
}
