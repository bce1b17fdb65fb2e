package store

import (
	"testing"
	"time"

	"github.com/skilletapp/skillet/internal/model"
)

func TestPushSubscriptionUpsertByEndpoint(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPushStore(db)

	sub, err := ps.CreateSubscription(userID, "https://push.example.com/abc", "p256dh-1", "auth-1", "phone")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if sub.Endpoint != "https://push.example.com/abc" {
		t.Errorf("endpoint = %q", sub.Endpoint)
	}

	// Re-subscribing with the same endpoint refreshes keys, no duplicate row
	again, err := ps.CreateSubscription(userID, "https://push.example.com/abc", "p256dh-2", "auth-2", "phone")
	if err != nil {
		t.Fatalf("re-subscribe: %v", err)
	}
	if again.ID != sub.ID {
		t.Errorf("re-subscribe id = %d, want %d", again.ID, sub.ID)
	}
	if again.P256dhKey != "p256dh-2" {
		t.Errorf("p256dh = %q, want refreshed key", again.P256dhKey)
	}

	subs, _ := ps.ListByUser(userID)
	if len(subs) != 1 {
		t.Errorf("subscription count = %d, want 1", len(subs))
	}
}

func TestPushDeleteByEndpoint(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPushStore(db)

	ps.CreateSubscription(userID, "https://push.example.com/gone", "k", "a", "")

	if err := ps.DeleteByEndpoint("https://push.example.com/gone"); err != nil {
		t.Fatalf("delete by endpoint: %v", err)
	}

	subs, _ := ps.ListByUser(userID)
	if len(subs) != 0 {
		t.Errorf("subscription count = %d, want 0", len(subs))
	}
}

func TestPushListUserIDs(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPushStore(db)
	us := NewUserStore(db)

	other, _ := us.Create("other@example.com", "Other", "h")

	ps.CreateSubscription(userID, "https://push.example.com/1", "k", "a", "")
	ps.CreateSubscription(userID, "https://push.example.com/2", "k", "a", "")
	ps.CreateSubscription(other.ID, "https://push.example.com/3", "k", "a", "")

	ids, err := ps.ListUserIDs()
	if err != nil {
		t.Fatalf("list user ids: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("distinct user count = %d, want 2", len(ids))
	}
}

func TestPushSentDedup(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPushStore(db)

	sent, err := ps.WasSent(userID, model.NotifTypeDinnerReminder, "2026-09-01")
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if sent {
		t.Error("expected not sent yet")
	}

	if err := ps.RecordSent(userID, model.NotifTypeDinnerReminder, "2026-09-01"); err != nil {
		t.Fatalf("record sent: %v", err)
	}
	// Recording twice is a no-op
	if err := ps.RecordSent(userID, model.NotifTypeDinnerReminder, "2026-09-01"); err != nil {
		t.Fatalf("record sent again: %v", err)
	}

	sent, _ = ps.WasSent(userID, model.NotifTypeDinnerReminder, "2026-09-01")
	if !sent {
		t.Error("expected sent after record")
	}

	// A different reference is independent
	sent, _ = ps.WasSent(userID, model.NotifTypeDinnerReminder, "2026-09-02")
	if sent {
		t.Error("expected different reference not sent")
	}
}

func TestPushCleanupSent(t *testing.T) {
	db, userID := setupTestDB(t)
	ps := NewPushStore(db)

	ps.RecordSent(userID, model.NotifTypePantryExpiring, "milk-1")

	if err := ps.CleanupSent(time.Now().UTC().Add(24 * time.Hour)); err != nil {
		t.Fatalf("cleanup sent: %v", err)
	}

	sent, _ := ps.WasSent(userID, model.NotifTypePantryExpiring, "milk-1")
	if sent {
		t.Error("expected record removed by cleanup")
	}
}
