package pantry

import "strings"

// Categorize returns the pantry category for the given ingredient name.
// It performs case-insensitive matching: exact match first, then substring match.
// Falls back to "Other" if no match is found.
func Categorize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "Other"
	}

	// Phase 1: exact match
	if cat, ok := exactMatch[n]; ok {
		return cat
	}

	// Phase 2: substring match (ordered longer/more-specific first)
	for _, entry := range substringMatches {
		if strings.Contains(n, entry.keyword) {
			return entry.category
		}
	}

	return "Other"
}

// Categories returns the full ordered category list.
func Categories() []string {
	return []string{
		"Produce",
		"Dairy & Eggs",
		"Meat & Seafood",
		"Bakery",
		"Grains & Pasta",
		"Canned & Jarred",
		"Spices & Condiments",
		"Baking",
		"Frozen",
		"Beverages",
		"Snacks",
		"Other",
	}
}

var exactMatch = map[string]string{
	// Produce
	"apple":        "Produce",
	"apples":       "Produce",
	"banana":       "Produce",
	"bananas":      "Produce",
	"orange":       "Produce",
	"oranges":      "Produce",
	"lemon":        "Produce",
	"lemons":       "Produce",
	"lime":         "Produce",
	"limes":        "Produce",
	"avocado":      "Produce",
	"tomato":       "Produce",
	"tomatoes":     "Produce",
	"potato":       "Produce",
	"potatoes":     "Produce",
	"onion":        "Produce",
	"onions":       "Produce",
	"garlic":       "Produce",
	"lettuce":      "Produce",
	"spinach":      "Produce",
	"kale":         "Produce",
	"broccoli":     "Produce",
	"carrots":      "Produce",
	"celery":       "Produce",
	"cucumber":     "Produce",
	"mushrooms":    "Produce",
	"corn":         "Produce",
	"grapes":       "Produce",
	"strawberries": "Produce",
	"blueberries":  "Produce",
	"cilantro":     "Produce",
	"basil":        "Produce",
	"parsley":      "Produce",
	"ginger":       "Produce",
	"zucchini":     "Produce",
	"asparagus":    "Produce",
	"green beans":  "Produce",

	// Dairy & Eggs
	"milk":           "Dairy & Eggs",
	"eggs":           "Dairy & Eggs",
	"butter":         "Dairy & Eggs",
	"cheese":         "Dairy & Eggs",
	"yogurt":         "Dairy & Eggs",
	"cream cheese":   "Dairy & Eggs",
	"sour cream":     "Dairy & Eggs",
	"heavy cream":    "Dairy & Eggs",
	"parmesan":       "Dairy & Eggs",
	"mozzarella":     "Dairy & Eggs",
	"cheddar":        "Dairy & Eggs",
	"cottage cheese": "Dairy & Eggs",

	// Meat & Seafood
	"chicken":       "Meat & Seafood",
	"beef":          "Meat & Seafood",
	"pork":          "Meat & Seafood",
	"turkey":        "Meat & Seafood",
	"bacon":         "Meat & Seafood",
	"sausage":       "Meat & Seafood",
	"ham":           "Meat & Seafood",
	"steak":         "Meat & Seafood",
	"salmon":        "Meat & Seafood",
	"shrimp":        "Meat & Seafood",
	"tuna":          "Meat & Seafood",
	"fish":          "Meat & Seafood",
	"ground beef":   "Meat & Seafood",
	"ground turkey": "Meat & Seafood",
	"lamb":          "Meat & Seafood",
	"tofu":          "Meat & Seafood",

	// Bakery
	"bread":     "Bakery",
	"bagels":    "Bakery",
	"tortillas": "Bakery",
	"rolls":     "Bakery",
	"buns":      "Bakery",
	"pita":      "Bakery",

	// Grains & Pasta
	"rice":       "Grains & Pasta",
	"pasta":      "Grains & Pasta",
	"spaghetti":  "Grains & Pasta",
	"noodles":    "Grains & Pasta",
	"quinoa":     "Grains & Pasta",
	"oats":       "Grains & Pasta",
	"oatmeal":    "Grains & Pasta",
	"couscous":   "Grains & Pasta",
	"cereal":     "Grains & Pasta",
	"breadcrumbs": "Grains & Pasta",

	// Canned & Jarred
	"canned beans":    "Canned & Jarred",
	"canned tomatoes": "Canned & Jarred",
	"tomato paste":    "Canned & Jarred",
	"tomato sauce":    "Canned & Jarred",
	"soup":            "Canned & Jarred",
	"broth":           "Canned & Jarred",
	"stock":           "Canned & Jarred",
	"beans":           "Canned & Jarred",
	"chickpeas":       "Canned & Jarred",
	"lentils":         "Canned & Jarred",
	"coconut milk":    "Canned & Jarred",
	"salsa":           "Canned & Jarred",

	// Spices & Condiments
	"salt":          "Spices & Condiments",
	"pepper":        "Spices & Condiments",
	"oil":           "Spices & Condiments",
	"olive oil":     "Spices & Condiments",
	"vinegar":       "Spices & Condiments",
	"soy sauce":     "Spices & Condiments",
	"ketchup":       "Spices & Condiments",
	"mustard":       "Spices & Condiments",
	"mayonnaise":    "Spices & Condiments",
	"honey":         "Spices & Condiments",
	"peanut butter": "Spices & Condiments",
	"hot sauce":     "Spices & Condiments",
	"cumin":         "Spices & Condiments",
	"paprika":       "Spices & Condiments",
	"oregano":       "Spices & Condiments",
	"cinnamon":      "Spices & Condiments",
	"maple syrup":   "Spices & Condiments",

	// Baking
	"flour":          "Baking",
	"sugar":          "Baking",
	"brown sugar":    "Baking",
	"baking soda":    "Baking",
	"baking powder":  "Baking",
	"yeast":          "Baking",
	"vanilla":        "Baking",
	"cocoa powder":   "Baking",
	"chocolate chips": "Baking",

	// Frozen
	"ice cream":      "Frozen",
	"frozen peas":    "Frozen",
	"frozen veggies": "Frozen",
	"frozen fruit":   "Frozen",

	// Beverages
	"water":  "Beverages",
	"juice":  "Beverages",
	"coffee": "Beverages",
	"tea":    "Beverages",
	"soda":   "Beverages",
	"wine":   "Beverages",

	// Snacks
	"chips":     "Snacks",
	"crackers":  "Snacks",
	"cookies":   "Snacks",
	"popcorn":   "Snacks",
	"nuts":      "Snacks",
	"almonds":   "Snacks",
	"chocolate": "Snacks",
}

type substringEntry struct {
	keyword  string
	category string
}

// Ordered with longer/more-specific keywords first for deterministic priority.
var substringMatches = []substringEntry{
	// Meat & Seafood — longer phrases first
	{"chicken breast", "Meat & Seafood"},
	{"chicken thigh", "Meat & Seafood"},
	{"ground beef", "Meat & Seafood"},
	{"ground turkey", "Meat & Seafood"},
	{"pork chop", "Meat & Seafood"},

	// Dairy & Eggs
	{"cream cheese", "Dairy & Eggs"},
	{"sour cream", "Dairy & Eggs"},
	{"heavy cream", "Dairy & Eggs"},
	{"greek yogurt", "Dairy & Eggs"},
	{"almond milk", "Dairy & Eggs"},
	{"oat milk", "Dairy & Eggs"},
	{"yogurt", "Dairy & Eggs"},
	{"cheese", "Dairy & Eggs"},
	{"milk", "Dairy & Eggs"},
	{"butter", "Dairy & Eggs"},
	{"cream", "Dairy & Eggs"},
	{"egg", "Dairy & Eggs"},

	// Produce
	{"bell pepper", "Produce"},
	{"sweet potato", "Produce"},
	{"green onion", "Produce"},
	{"cherry tomato", "Produce"},
	{"cabbage", "Produce"},
	{"cauliflower", "Produce"},
	{"squash", "Produce"},
	{"berry", "Produce"},
	{"berries", "Produce"},
	{"lettuce", "Produce"},
	{"spinach", "Produce"},
	{"apple", "Produce"},
	{"banana", "Produce"},
	{"tomato", "Produce"},
	{"potato", "Produce"},
	{"onion", "Produce"},
	{"carrot", "Produce"},
	{"celery", "Produce"},

	// Baking
	{"baking soda", "Baking"},
	{"baking powder", "Baking"},
	{"brown sugar", "Baking"},
	{"powdered sugar", "Baking"},
	{"chocolate chip", "Baking"},
	{"flour", "Baking"},
	{"yeast", "Baking"},
	{"vanilla extract", "Baking"},

	// Bakery
	{"sourdough", "Bakery"},
	{"bread", "Bakery"},
	{"bagel", "Bakery"},
	{"tortilla", "Bakery"},
	{"bun", "Bakery"},

	// Grains & Pasta
	{"rice", "Grains & Pasta"},
	{"pasta", "Grains & Pasta"},
	{"noodle", "Grains & Pasta"},
	{"oat", "Grains & Pasta"},
	{"grain", "Grains & Pasta"},
	{"cereal", "Grains & Pasta"},

	// Canned & Jarred
	{"canned", "Canned & Jarred"},
	{"tomato paste", "Canned & Jarred"},
	{"coconut milk", "Canned & Jarred"},
	{"broth", "Canned & Jarred"},
	{"stock", "Canned & Jarred"},
	{"soup", "Canned & Jarred"},
	{"bean", "Canned & Jarred"},
	{"lentil", "Canned & Jarred"},
	{"chickpea", "Canned & Jarred"},

	// Spices & Condiments
	{"peanut butter", "Spices & Condiments"},
	{"olive oil", "Spices & Condiments"},
	{"sesame oil", "Spices & Condiments"},
	{"soy sauce", "Spices & Condiments"},
	{"hot sauce", "Spices & Condiments"},
	{"vinegar", "Spices & Condiments"},
	{"spice", "Spices & Condiments"},
	{"seasoning", "Spices & Condiments"},
	{"sauce", "Spices & Condiments"},
	{"oil", "Spices & Condiments"},
	{"syrup", "Spices & Condiments"},

	// Frozen
	{"frozen", "Frozen"},
	{"ice cream", "Frozen"},

	// Beverages
	{"sparkling water", "Beverages"},
	{"coffee", "Beverages"},
	{"juice", "Beverages"},
	{"tea", "Beverages"},
	{"water", "Beverages"},
	{"wine", "Beverages"},

	// Snacks
	{"chip", "Snacks"},
	{"cracker", "Snacks"},
	{"cookie", "Snacks"},
	{"popcorn", "Snacks"},
	{"nut", "Snacks"},
	{"chocolate", "Snacks"},
	{"snack", "Snacks"},
}
