package recommend

import (
	"fmt"
	"strings"
)

// buildPrompt asks for a bare JSON array so the response survives parsing
// without depending on provider-specific structured-output features.
func buildPrompt(req Request) string {
	var b strings.Builder

	count := req.Count
	if count <= 0 {
		count = 3
	}
	mealType := req.MealType
	if mealType == "" {
		mealType = "dinner"
	}

	fmt.Fprintf(&b, "Suggest %d %s recipes for a home cook.\n\n", count, mealType)

	if len(req.Pantry) > 0 {
		b.WriteString("Prefer ingredients already on hand: ")
		b.WriteString(strings.Join(req.Pantry, ", "))
		b.WriteString(".\n")
	}
	if len(req.Restrictions) > 0 {
		b.WriteString("Every recipe MUST respect these dietary restrictions: ")
		b.WriteString(strings.Join(req.Restrictions, ", "))
		b.WriteString(".\n")
	}
	if req.ExtraInstructions != "" {
		b.WriteString("Additional request: ")
		b.WriteString(req.ExtraInstructions)
		b.WriteString("\n")
	}

	b.WriteString(`
Respond with ONLY a JSON array, no prose and no markdown fences. Each element:
{
  "name": string,
  "description": string,
  "cuisine": string,
  "ingredients": [string],
  "instructions": [string],
  "prep_time_minutes": number,
  "cook_time_minutes": number,
  "servings": number,
  "difficulty": "easy" | "medium" | "hard"
}`)

	return b.String()
}
