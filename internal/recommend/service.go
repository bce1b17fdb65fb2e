package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"

	"github.com/skilletapp/skillet/internal/cache"
)

const (
	// DefaultTTL is how long a generated suggestion set stays cached.
	DefaultTTL = 30 * time.Minute

	maxAttemptsPerProvider = 3
	retryBaseDelay         = 500 * time.Millisecond
)

// ErrNoProviders is returned when no API keys are configured.
var ErrNoProviders = errors.New("no recommendation providers configured")

// Service tries each provider in order, retrying transient failures, and
// caches successful responses per user and request shape.
type Service struct {
	providers []Provider
	cache     cache.Cache
	logger    *slog.Logger
	ttl       time.Duration
}

func NewService(providers []Provider, c cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		providers: providers,
		cache:     c,
		logger:    logger.With("component", "recommend"),
		ttl:       DefaultTTL,
	}
}

// Suggest returns recipe suggestions for the request, from cache when a
// fresh entry exists.
func (s *Service) Suggest(ctx context.Context, userID int64, req Request) ([]Suggestion, error) {
	if len(s.providers) == 0 {
		return nil, ErrNoProviders
	}

	key, err := s.cacheKey(ctx, userID, req)
	if err == nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var suggestions []Suggestion
			if err := json.Unmarshal([]byte(cached), &suggestions); err == nil {
				s.logger.Debug("cache hit", "user_id", userID, "key", key)
				return suggestions, nil
			}
		}
	}

	prompt := buildPrompt(req)

	var errs error
	for _, p := range s.providers {
		suggestions, err := s.tryProvider(ctx, p, prompt)
		if err != nil {
			s.logger.Warn("provider failed", "provider", p.Name(), "error", err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		if payload, err := json.Marshal(suggestions); err == nil && key != "" {
			if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
				s.logger.Warn("cache write failed", "error", err)
			}
		}
		return suggestions, nil
	}
	return nil, fmt.Errorf("all providers failed: %w", errs)
}

// tryProvider calls one provider with backoff on rate limits and 5xx.
func (s *Service) tryProvider(ctx context.Context, p Provider, prompt string) ([]Suggestion, error) {
	backoff := retry.WithMaxRetries(maxAttemptsPerProvider-1, retry.NewExponential(retryBaseDelay))

	var suggestions []Suggestion
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		text, err := p.Complete(ctx, prompt)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Transient() {
				return retry.RetryableError(err)
			}
			return err
		}
		suggestions, err = parseSuggestions(text, p.Name())
		return err
	})
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Invalidate drops all cached suggestions for a user by rotating the epoch
// folded into every cache key.
func (s *Service) Invalidate(ctx context.Context, userID int64) error {
	return s.cache.Set(ctx, epochKey(userID), uuid.NewString(), 24*time.Hour)
}

// cacheKey digests the user, request shape, pantry, and restrictions. The
// per-user epoch lets Invalidate clear entries without enumerating keys.
func (s *Service) cacheKey(ctx context.Context, userID int64, req Request) (string, error) {
	epoch, err := s.cache.Get(ctx, epochKey(userID))
	if err != nil && err != cache.ErrNotFound {
		return "", err
	}

	pantry := append([]string(nil), req.Pantry...)
	sort.Strings(pantry)
	restrictions := append([]string(nil), req.Restrictions...)
	sort.Strings(restrictions)

	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|%d|%s|%s|%s|%s",
		userID, req.MealType, req.Count, req.ExtraInstructions,
		strings.Join(pantry, ","), strings.Join(restrictions, ","), epoch)
	return "rec:" + hex.EncodeToString(h.Sum(nil)), nil
}

func epochKey(userID int64) string {
	return fmt.Sprintf("rec:epoch:%d", userID)
}
