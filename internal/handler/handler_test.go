package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/database"
	"github.com/skilletapp/skillet/internal/store"
	"github.com/skilletapp/skillet/internal/websocket"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHub() *websocket.Hub {
	return websocket.NewHub(testLogger())
}

// setupDB opens an in-memory database with migrations applied and seeds one
// user to authenticate requests as.
func setupDB(t *testing.T) (*sql.DB, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	u, err := store.NewUserStore(db).Create("test@example.com", "Test", "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return db, u.ID
}

// doRequest invokes a handler with a JSON body, an authenticated context, and
// optional path values.
func doRequest(t *testing.T, h http.HandlerFunc, method string, userID int64, body any, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, "/", reader)
	if userID != 0 {
		ctx := auth.WithAuth(context.Background(), auth.AuthContext{UserID: userID, Email: "test@example.com"})
		req = req.WithContext(ctx)
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}

	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// doRequestWithQuery is doRequest for GET handlers driven by query params.
func doRequestWithQuery(t *testing.T, h http.HandlerFunc, userID int64, rawQuery string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	ctx := auth.WithAuth(context.Background(), auth.AuthContext{UserID: userID, Email: "test@example.com"})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func timeDaysFromNow(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func idPath(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
