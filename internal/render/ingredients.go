package render

import (
	"fmt"
	"strings"

	"dinner-daily/internal/menu"
)

// IngredientRow is one line of the ingredients table: an ingredient and the
// days whose dishes use it.
type IngredientRow struct {
	Ingredient string
	Days       []string
}

// DaysLabel joins the days for display.
func (r IngredientRow) DaysLabel() string {
	return strings.Join(r.Days, ", ")
}

// IngredientsTable lists every ingredient line of the menu in order of first
// use. Identical lines are merged and each day is listed once.
func IngredientsTable(m menu.Menu) []IngredientRow {
	start, err := m.StartTime()
	hasStart := err == nil

	var rows []IngredientRow
	index := make(map[string]int)
	for i, day := range m.DayMenus {
		label := fmt.Sprintf("Day %d", i+1)
		if hasStart {
			label = start.AddDate(0, 0, i).Weekday().String()[:3]
		}

		var dishes []menu.Dish
		if day.Main != nil {
			dishes = append(dishes, *day.Main)
		}
		dishes = append(dishes, day.Sides...)

		for _, d := range dishes {
			for _, ingredient := range d.Ingredients {
				key := strings.TrimSpace(ingredient)
				if key == "" {
					continue
				}
				pos, ok := index[key]
				if !ok {
					pos = len(rows)
					index[key] = pos
					rows = append(rows, IngredientRow{Ingredient: key})
				}
				if days := rows[pos].Days; len(days) == 0 || days[len(days)-1] != label {
					rows[pos].Days = append(rows[pos].Days, label)
				}
			}
		}
	}
	return rows
}
