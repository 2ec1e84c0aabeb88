// Package legacy holds the string-heavy menu format of the old HTML pages and
// the conversion between it and the structured menu.
package legacy

// Dish is a recipe as printed on a legacy menu page.
type Dish struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Meal is one day of a legacy menu.
type Meal struct {
	Duration   string   `json:"duration"`
	Notes      []string `json:"notes"`
	MainDish   Dish     `json:"main_dish"`
	Nutrition  []string `json:"nutrition"`
	SideDishes []Dish   `json:"side_dishes"`
}

// LegacyMenu is a whole week in the legacy format.
type LegacyMenu struct {
	Date     string `json:"date"`
	Meals    []Meal `json:"meals"`
	Servings string `json:"servings"`
	Store    string `json:"store"`
	Title    string `json:"title"`
}
