package recommend

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// parseSuggestions extracts recipe suggestions from raw model text. Models
// frequently wrap JSON in markdown fences or preamble despite instructions,
// so the parser strips fences and scans for the outermost array.
func parseSuggestions(text, provider string) ([]Suggestion, error) {
	payload := extractJSONArray(text)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array in %s response", provider)
	}

	var raw []Suggestion
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decode %s suggestions: %w", provider, err)
	}

	var suggestions []Suggestion
	for _, s := range raw {
		if s.Name == "" || len(s.Ingredients) == 0 || len(s.Instructions) == 0 {
			continue
		}
		s.ID = uuid.NewString()
		s.Provider = provider
		if s.Servings <= 0 {
			s.Servings = 4
		}
		suggestions = append(suggestions, s)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%s returned no valid suggestions", provider)
	}
	return suggestions, nil
}

// extractJSONArray returns the first top-level JSON array in the text, or "".
func extractJSONArray(text string) string {
	text = stripFences(text)

	start := strings.Index(text, "[")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
