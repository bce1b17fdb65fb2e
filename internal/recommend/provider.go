// Package recommend generates recipe suggestions by prompting hosted
// language-model APIs with the user's pantry and dietary restrictions.
// Providers are tried in order until one returns a parseable response.
package recommend

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Request describes what the caller wants suggested.
type Request struct {
	MealType          string
	Count             int
	ExtraInstructions string
	Pantry            []string
	Restrictions      []string
}

// Suggestion is one generated recipe. Suggestions are ephemeral; they only
// become recipes when the user saves one.
type Suggestion struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Cuisine         string   `json:"cuisine"`
	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	PrepTimeMinutes int      `json:"prep_time_minutes"`
	CookTimeMinutes int      `json:"cook_time_minutes"`
	Servings        int      `json:"servings"`
	Difficulty      string   `json:"difficulty"`
	Provider        string   `json:"provider"`
}

// Provider is a single model API. Complete returns the raw model text for a
// prompt; parsing and validation happen in the caller.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// APIError carries the provider's HTTP status so the caller can decide
// whether a retry is worthwhile.
type APIError struct {
	Provider string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Body)
}

// Transient reports whether the failure is worth retrying (rate limits and
// server-side errors).
func (e *APIError) Transient() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}
