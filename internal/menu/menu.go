package menu

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the layout of Menu.StartDate and Menu.EndDate.
const DateLayout = "2006-01-02"

// acceptedDateLayouts are tried in order when reading dates produced by the API.
var acceptedDateLayouts = []string{DateLayout, "2006-01-02T15:04:05", time.RFC3339}

// DishType tells a main dish apart from a side.
type DishType int

const (
	DishTypeMain DishType = 1
	DishTypeSide DishType = 2
)

// String returns the upper-case name of the dish type.
func (t DishType) String() string {
	switch t {
	case DishTypeMain:
		return "MAIN"
	case DishTypeSide:
		return "SIDE"
	default:
		return fmt.Sprintf("DishType(%d)", int(t))
	}
}

// UnmarshalJSON rejects dish types outside the known set.
func (t *DishType) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode dish type: %w", err)
	}
	switch DishType(n) {
	case DishTypeMain, DishTypeSide:
		*t = DishType(n)
		return nil
	default:
		return fmt.Errorf("unknown dish type %d", n)
	}
}

// ProteinCategory classifies the main protein of a dish.
type ProteinCategory int

const (
	ProteinNone ProteinCategory = iota
	ProteinRedMeat
	ProteinPork
	ProteinPoultry
	ProteinFish
	ProteinShellfish
	ProteinVegetarian
)

// String returns the upper-case name of the category.
func (c ProteinCategory) String() string {
	switch c {
	case ProteinNone:
		return "NONE"
	case ProteinRedMeat:
		return "RED_MEAT"
	case ProteinPork:
		return "PORK"
	case ProteinPoultry:
		return "POULTRY"
	case ProteinFish:
		return "FISH"
	case ProteinShellfish:
		return "SHELLFISH"
	case ProteinVegetarian:
		return "VEGETARIAN"
	default:
		return fmt.Sprintf("ProteinCategory(%d)", int(c))
	}
}

// Label is the human readable category name used in rendered menus.
func (c ProteinCategory) Label() string {
	switch c {
	case ProteinNone:
		return ""
	case ProteinRedMeat:
		return "Red Meat"
	case ProteinPork:
		return "Pork"
	case ProteinPoultry:
		return "Poultry"
	case ProteinFish:
		return "Fish"
	case ProteinShellfish:
		return "Shellfish"
	case ProteinVegetarian:
		return "Vegetarian"
	default:
		return ""
	}
}

// UnmarshalJSON accepts null as ProteinNone and rejects unknown categories.
func (c *ProteinCategory) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ProteinNone
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode protein category: %w", err)
	}
	if n < int(ProteinNone) || n > int(ProteinVegetarian) {
		return fmt.Errorf("unknown protein category %d", n)
	}
	*c = ProteinCategory(n)
	return nil
}

// Option is an alternative recipe offered for a slot of the menu.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Dish is a single recipe as served by the menu API.
type Dish struct {
	BigImageURL     *string         `json:"big_image_url,omitempty"`
	CookingTime     float64         `json:"cooking_time"`
	DishType        DishType        `json:"dish_type"`
	ID              int             `json:"id"`
	Ingredients     []string        `json:"ingredients"`
	Instructions    string          `json:"instructions"`
	IsPersonal      bool            `json:"is_personal"`
	LargeImageURL   *string         `json:"large_image_url,omitempty"`
	Name            string          `json:"name"`
	PreparationTime float64         `json:"preparation_time"`
	ProteinCategory ProteinCategory `json:"protein_category"`
	SmallImageURL   *string         `json:"small_image_url,omitempty"`
}

// TotalTime is preparation plus cooking time, in minutes.
func (d Dish) TotalTime() float64 {
	return d.PreparationTime + d.CookingTime
}

// DayMenu is the dinner planned for one day.
type DayMenu struct {
	Calories          float64  `json:"calories"`
	Carbs             float64  `json:"carbs"`
	CornerNote        string   `json:"corner_note"`
	Fat               float64  `json:"fat"`
	Fiber             float64  `json:"fiber"`
	ID                int      `json:"id"`
	Main              *Dish    `json:"main"`
	MainName          string   `json:"main_name"`
	MainRecipeOptions []Option `json:"main_recipe_options"`
	Protein           float64  `json:"protein"`
	SaturatedFat      float64  `json:"saturated_fat"`
	Sides             []Dish   `json:"sides"`
	Sodium            float64  `json:"sodium"`
	TimeToTable       float64  `json:"time_to_table"`
}

// MetaData describes the household the menu was generated for.
type MetaData struct {
	Env        string `json:"env"`
	FamilySize int    `json:"family_size"`
	ID         int    `json:"id"`
	IsNewUser  bool   `json:"is_new_user"`
}

// Menu is a structured weekly menu.
type Menu struct {
	ID                int       `json:"id"`
	EndDate           string    `json:"end_date"`
	StartDate         string    `json:"start_date"`
	DayMenus          []DayMenu `json:"day_menus"`
	IsOriginal        bool      `json:"is_original"`
	MetaData          MetaData  `json:"metadata"`
	Name              string    `json:"name"`
	SideRecipeOptions []Option  `json:"side_recipe_options"`
}

// StartTime parses StartDate.
func (m Menu) StartTime() (time.Time, error) {
	return ParseDate(m.StartDate)
}

// EndTime parses EndDate.
func (m Menu) EndTime() (time.Time, error) {
	return ParseDate(m.EndDate)
}

// ParseDate reads a menu date in any of the layouts the API has been seen to emit.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range acceptedDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("failed to parse menu date %q: %w", s, lastErr)
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
