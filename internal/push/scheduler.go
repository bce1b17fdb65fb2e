package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/store"
)

const (
	defaultReminderHour = 16
	expiringWindowDays  = 3
	sentRetention       = 30 * 24 * time.Hour
)

// Scheduler periodically checks for notifications to send: a dinner reminder
// at each user's configured hour and a daily digest of pantry items about to
// expire.
type Scheduler struct {
	mu       sync.RWMutex
	service  *Service
	push     *store.PushStore
	plans    *store.MealPlanStore
	pantry   *store.PantryStore
	settings *store.SettingsStore
	logger   *slog.Logger
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a notification scheduler.
func NewScheduler(svc *Service, pushStore *store.PushStore, planStore *store.MealPlanStore, pantryStore *store.PantryStore, settingsStore *store.SettingsStore, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		service:  svc,
		push:     pushStore,
		plans:    planStore,
		pantry:   pantryStore,
		settings: settingsStore,
		logger:   logger.With("component", "push_scheduler"),
		interval: 60 * time.Second,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(time.Now())
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick(now time.Time) {
	userIDs, err := s.push.ListUserIDs()
	if err != nil {
		s.logger.Error("list subscribed users", "error", err)
		return
	}

	var g errgroup.Group
	g.SetLimit(4)
	for _, uid := range userIDs {
		uid := uid
		g.Go(func() error {
			s.checkDinnerReminder(uid, now)
			s.checkExpiringPantry(uid, now)
			return nil
		})
	}
	g.Wait()

	// Prune the dedup log once a day
	if now.Hour() == 3 && now.Minute() == 0 {
		if err := s.push.CleanupSent(now.Add(-sentRetention)); err != nil {
			s.logger.Error("cleanup sent log", "error", err)
		}
	}
}

func (s *Scheduler) checkDinnerReminder(userID int64, now time.Time) {
	hour, err := s.settings.GetInt(userID, "reminder_hour", defaultReminderHour)
	if err != nil {
		s.logger.Error("read reminder hour", "user_id", userID, "error", err)
		return
	}
	if now.Hour() != hour {
		return
	}

	today := now.Format("2006-01-02")
	refID := "dinner-" + today

	sent, err := s.push.WasSent(userID, model.NotifTypeDinnerReminder, refID)
	if err != nil || sent {
		return
	}

	plans, err := s.plans.ListForDate(userID, today, model.MealTypeDinner)
	if err != nil {
		s.logger.Error("list dinner plans", "user_id", userID, "error", err)
		return
	}
	if len(plans) == 0 {
		return
	}

	body := "Tonight: " + dinnerSummary(plans)
	payload := Payload{
		Title: "Dinner Reminder",
		Body:  body,
		URL:   "/meal-plans",
		Tag:   refID,
	}

	s.sendToUser(userID, payload)
	s.push.RecordSent(userID, model.NotifTypeDinnerReminder, refID)
}

func (s *Scheduler) checkExpiringPantry(userID int64, now time.Time) {
	hour, err := s.settings.GetInt(userID, "reminder_hour", defaultReminderHour)
	if err != nil || now.Hour() != hour {
		return
	}

	today := now.Format("2006-01-02")
	refID := "pantry-" + today

	sent, err := s.push.WasSent(userID, model.NotifTypePantryExpiring, refID)
	if err != nil || sent {
		return
	}

	items, err := s.pantry.ListExpiringWithin(userID, expiringWindowDays)
	if err != nil {
		s.logger.Error("list expiring pantry", "user_id", userID, "error", err)
		return
	}
	if len(items) == 0 {
		return
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	body := fmt.Sprintf("Expiring soon: %s", strings.Join(names, ", "))
	if len(names) > 4 {
		body = fmt.Sprintf("Expiring soon: %s and %d more", strings.Join(names[:4], ", "), len(names)-4)
	}

	payload := Payload{
		Title: "Pantry Check",
		Body:  body,
		URL:   "/pantry",
		Tag:   refID,
	}

	s.sendToUser(userID, payload)
	s.push.RecordSent(userID, model.NotifTypePantryExpiring, refID)
}

// sendToUser delivers a payload to every subscription a user has, pruning
// expired endpoints along the way.
func (s *Scheduler) sendToUser(userID int64, payload Payload) {
	subs, err := s.push.ListByUser(userID)
	if err != nil {
		s.logger.Error("list subscriptions", "user_id", userID, "error", err)
		return
	}

	for _, sub := range subs {
		if err := s.service.Send(&sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				s.push.DeleteByEndpoint(sub.Endpoint)
			} else {
				s.logger.Error("send push", "user_id", userID, "error", err)
			}
		}
	}
}

func dinnerSummary(plans []model.MealPlan) string {
	names := make([]string, 0, len(plans))
	for _, p := range plans {
		switch {
		case p.RecipeName != "":
			names = append(names, p.RecipeName)
		case p.Notes != "":
			names = append(names, p.Notes)
		}
	}
	if len(names) == 0 {
		return "dinner is planned"
	}
	return strings.Join(names, ", ")
}
