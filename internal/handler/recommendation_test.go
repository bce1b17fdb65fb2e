package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/skilletapp/skillet/internal/cache"
	"github.com/skilletapp/skillet/internal/model"
	"github.com/skilletapp/skillet/internal/recommend"
	"github.com/skilletapp/skillet/internal/store"
)

type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.text, p.err
}

const stubSuggestions = `[{"name":"Lentil Soup","description":"Hearty","cuisine":"Mediterranean",
"ingredients":["lentils","carrots"],"instructions":["Simmer 30 minutes"],
"prep_time_minutes":10,"cook_time_minutes":30,"servings":4,"difficulty":"easy"}]`

func setupRecommendationHandler(t *testing.T, p recommend.Provider) (*RecommendationHandler, int64) {
	t.Helper()
	db, userID := setupDB(t)

	var providers []recommend.Provider
	if p != nil {
		providers = append(providers, p)
	}
	svc := recommend.NewService(providers, cache.NewMemory(), testLogger())

	h := NewRecommendationHandler(
		svc,
		store.NewPantryStore(db),
		store.NewFamilyMemberStore(db),
		store.NewRecipeStore(db),
		testHub(),
		testLogger(),
	)
	return h, userID
}

func TestSuggestReturnsSuggestions(t *testing.T) {
	h, userID := setupRecommendationHandler(t, &stubProvider{text: stubSuggestions})

	rec := doRequest(t, h.Suggest, http.MethodPost, userID, map[string]any{
		"meal_type": "dinner",
		"count":     2,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Suggestions []recommend.Suggestion `json:"suggestions"`
	}
	decodeBody(t, rec, &out)
	if len(out.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(out.Suggestions))
	}
	if out.Suggestions[0].Provider != "stub" {
		t.Errorf("provider = %q", out.Suggestions[0].Provider)
	}
}

func TestSuggestValidation(t *testing.T) {
	h, userID := setupRecommendationHandler(t, &stubProvider{text: stubSuggestions})

	rec := doRequest(t, h.Suggest, http.MethodPost, userID, map[string]any{"meal_type": "brunch"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad meal_type status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, h.Suggest, http.MethodPost, userID, map[string]any{"count": 50}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("count 50 status = %d, want 400", rec.Code)
	}
}

func TestSuggestNoProviders(t *testing.T) {
	h, userID := setupRecommendationHandler(t, nil)

	rec := doRequest(t, h.Suggest, http.MethodPost, userID, map[string]any{}, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSuggestProviderFailure(t *testing.T) {
	h, userID := setupRecommendationHandler(t, &stubProvider{
		err: &recommend.APIError{Provider: "stub", Status: http.StatusUnauthorized, Body: "bad key"},
	})

	rec := doRequest(t, h.Suggest, http.MethodPost, userID, map[string]any{}, nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestSaveSuggestion(t *testing.T) {
	h, userID := setupRecommendationHandler(t, nil)

	rec := doRequest(t, h.Save, http.MethodPost, userID, map[string]any{
		"name":         "Lentil Soup",
		"description":  "Hearty",
		"cuisine":      "Mediterranean",
		"ingredients":  []string{"lentils", "carrots"},
		"instructions": []string{"Simmer 30 minutes"},
		"servings":     4,
		"difficulty":   "easy",
		"provider":     "anthropic",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}

	var recipe model.Recipe
	decodeBody(t, rec, &recipe)
	if recipe.Source != model.RecipeSourceAI {
		t.Errorf("source = %q, want ai", recipe.Source)
	}
	if recipe.AIProvider != "anthropic" {
		t.Errorf("ai_provider = %q", recipe.AIProvider)
	}
	if len(recipe.IngredientsNeeded) != 2 {
		t.Errorf("ingredients = %v", recipe.IngredientsNeeded)
	}
}

func TestSaveSuggestionValidation(t *testing.T) {
	h, userID := setupRecommendationHandler(t, nil)

	rec := doRequest(t, h.Save, http.MethodPost, userID, map[string]any{"name": "No Steps"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInvalidateCache(t *testing.T) {
	h, userID := setupRecommendationHandler(t, &stubProvider{text: stubSuggestions})

	rec := doRequest(t, h.InvalidateCache, http.MethodDelete, userID, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
