package legacy

import (
	"fmt"
	"regexp"
	"strconv"

	"dinner-daily/internal/menu"
)

// menuDays is the span of a legacy menu. Legacy menus are always weekly.
const menuDays = 7

var familySizePattern = regexp.MustCompile(`(\d+)$`)

// ToLegacy prints a structured menu in the legacy format, one meal per day.
func ToLegacy(m menu.Menu) (LegacyMenu, error) {
	start, err := m.StartTime()
	if err != nil {
		return LegacyMenu{}, &ParseError{Field: "start_date", Value: m.StartDate, Reason: err.Error()}
	}

	meals := make([]Meal, 0, len(m.DayMenus))
	for i, day := range m.DayMenus {
		meal, err := mealFromDay(day)
		if err != nil {
			return LegacyMenu{}, fmt.Errorf("day %d: %w", i+1, err)
		}
		meals = append(meals, meal)
	}

	return LegacyMenu{
		Date:     FormatDate(start),
		Meals:    meals,
		Servings: formatServings(m.MetaData.FamilySize),
		Store:    m.MetaData.Env,
		Title:    m.Name,
	}, nil
}

func mealFromDay(day menu.DayMenu) (Meal, error) {
	if day.Main == nil {
		return Meal{}, ErrMissingMain
	}

	var notes []string
	if day.CornerNote != "" {
		notes = SplitSentences(day.CornerNote)
	}

	sides := make([]Dish, 0, len(day.Sides))
	for _, side := range day.Sides {
		sides = append(sides, dishToLegacy(side))
	}

	return Meal{
		Duration:   FormatDuration(day.TimeToTable),
		Notes:      notes,
		MainDish:   dishToLegacy(*day.Main),
		Nutrition:  FormatNutrition(nutritionOf(day)),
		SideDishes: sides,
	}, nil
}

func dishToLegacy(d menu.Dish) Dish {
	return Dish{
		Title:        d.Name,
		Ingredients:  cloneStrings(d.Ingredients),
		Instructions: SplitSentences(d.Instructions),
	}
}

func nutritionOf(day menu.DayMenu) Nutrition {
	return Nutrition{
		Calories:     day.Calories,
		Carbs:        day.Carbs,
		Fat:          day.Fat,
		Fiber:        day.Fiber,
		Protein:      day.Protein,
		SaturatedFat: day.SaturatedFat,
		Sodium:       day.Sodium,
	}
}

// FromLegacy reads a legacy menu into the structured form. Fields the legacy
// format does not carry get fixed values: zero ids and prep/cook times, no
// protein category, no recipe options and an end date one week after the start.
func FromLegacy(l LegacyMenu) (menu.Menu, error) {
	start, err := ParseDate(l.Date)
	if err != nil {
		return menu.Menu{}, err
	}
	familySize, err := parseServings(l.Servings)
	if err != nil {
		return menu.Menu{}, err
	}

	days := make([]menu.DayMenu, 0, len(l.Meals))
	for i, meal := range l.Meals {
		day, err := dayFromMeal(meal)
		if err != nil {
			return menu.Menu{}, fmt.Errorf("meal %d: %w", i+1, err)
		}
		days = append(days, day)
	}

	return menu.Menu{
		StartDate:  menu.FormatDate(start),
		EndDate:    menu.FormatDate(start.AddDate(0, 0, menuDays)),
		DayMenus:   days,
		IsOriginal: true,
		MetaData: menu.MetaData{
			Env:        l.Store,
			FamilySize: familySize,
		},
		Name:              l.Title,
		SideRecipeOptions: []menu.Option{},
	}, nil
}

func dayFromMeal(meal Meal) (menu.DayMenu, error) {
	minutes, err := ParseDuration(meal.Duration)
	if err != nil {
		return menu.DayMenu{}, err
	}
	n, err := ParseNutrition(meal.Nutrition)
	if err != nil {
		return menu.DayMenu{}, err
	}
	// An empty corner note prints back as absent notes, so [] has no inverse.
	if meal.Notes != nil && len(meal.Notes) == 0 {
		return menu.DayMenu{}, parseErrorf("notes", "[]", "empty list; omit notes or use null")
	}

	main :=dishFromLegacy(meal.MainDish, menu.DishTypeMain)
	sides := make([]menu.Dish, 0, len(meal.SideDishes))
	for _, side := range meal.SideDishes {
		sides = append(sides, dishFromLegacy(side, menu.DishTypeSide))
	}

	return menu.DayMenu{
		Calories:          n.Calories,
		Carbs:             n.Carbs,
		CornerNote:        JoinSentences(meal.Notes),
		Fat:               n.Fat,
		Fiber:             n.Fiber,
		Main:              &main,
		MainName:          main.Name,
		MainRecipeOptions: []menu.Option{},
		Protein:           n.Protein,
		SaturatedFat:      n.SaturatedFat,
		Sides:             sides,
		Sodium:            n.Sodium,
		TimeToTable:       minutes,
	}, nil
}

func dishFromLegacy(d Dish, dishType menu.DishType) menu.Dish {
	return menu.Dish{
		DishType:        dishType,
		Ingredients:     cloneStrings(d.Ingredients),
		Instructions:    JoinSentences(d.Instructions),
		Name:            d.Title,
		ProteinCategory: menu.ProteinNone,
	}
}

func parseServings(servings string) (int, error) {
	m := familySizePattern.FindStringSubmatch(servings)
	if m == nil {
		return 0, parseErrorf("servings", servings, "expected a trailing family size")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, parseErrorf("servings", servings, "%v", err)
	}
	return n, nil
}

// formatServings prints the range ending at familySize, e.g. "Serves 3 to 4".
func formatServings(familySize int) string {
	return fmt.Sprintf("Serves %d to %d", familySize-1, familySize)
}

// cloneStrings copies s, keeping the nil/empty distinction.
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
