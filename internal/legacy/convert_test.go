package legacy

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"dinner-daily/internal/menu"
	"dinner-daily/internal/week"
)

func loadJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
}

func scenarioMenu() LegacyMenu {
	return LegacyMenu{
		Date: "March 3rd 2024",
		Meals: []Meal{
			{
				Duration: "45 mins",
				MainDish: Dish{
					Title:        "Sheet Pan Chicken",
					Ingredients:  []string{"4 chicken breasts", "1 lb broccoli"},
					Instructions: []string{"Heat the oven.", "Roast everything together!"},
				},
				Nutrition:  []string{"320 Cals", "30g Protein", "10g Fat", "5g Fiber", "40g Carbs"},
				SideDishes: []Dish{},
			},
		},
		Servings: "Serves 3 to 4",
		Store:    "Publix",
		Title:    "Weeknight Plan",
	}
}

func TestFromLegacy(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		l := scenarioMenu()
		m, err := FromLegacy(l)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if m.StartDate != "2024-03-03" {
			t.Errorf("Expected start date '2024-03-03', got '%s'", m.StartDate)
		}
		if m.EndDate != "2024-03-10" {
			t.Errorf("Expected end date '2024-03-10', got '%s'", m.EndDate)
		}
		if m.MetaData.FamilySize != 4 {
			t.Errorf("Expected family size 4, got %d", m.MetaData.FamilySize)
		}
		if m.MetaData.Env != "Publix" {
			t.Errorf("Expected env 'Publix', got '%s'", m.MetaData.Env)
		}
		if !m.IsOriginal {
			t.Error("Expected an imported menu to be marked original")
		}
		if len(m.DayMenus) != 1 {
			t.Fatalf("Expected 1 day menu, got %d", len(m.DayMenus))
		}

		day := m.DayMenus[0]
		if day.TimeToTable != 45 {
			t.Errorf("Expected time to table 45, got %v", day.TimeToTable)
		}
		if day.Calories != 320 || day.Protein != 30 || day.Fat != 10 || day.Fiber != 5 || day.Carbs != 40 {
			t.Errorf("Unexpected nutrition: %+v", day)
		}
		if day.SaturatedFat != 0 || day.Sodium != 0 {
			t.Errorf("Expected zero saturated fat and sodium, got %v and %v", day.SaturatedFat, day.Sodium)
		}
		if day.CornerNote != "" {
			t.Errorf("Expected an empty corner note, got %q", day.CornerNote)
		}
		if day.Main == nil {
			t.Fatal("Expected a main dish, got nil")
		}
		if day.MainName != "Sheet Pan Chicken" {
			t.Errorf("Expected main name 'Sheet Pan Chicken', got '%s'", day.MainName)
		}
		if day.Main.Instructions != "Heat the oven.  Roast everything together!" {
			t.Errorf("Unexpected instructions %q", day.Main.Instructions)
		}
		if day.Main.PreparationTime != 0 || day.Main.CookingTime != 0 {
			t.Errorf("Expected zero prep and cook time, got %v and %v", day.Main.PreparationTime, day.Main.CookingTime)
		}
		if day.Main.DishType != menu.DishTypeMain {
			t.Errorf("Expected MAIN, got %v", day.Main.DishType)
		}
		if day.Main.ProteinCategory != menu.ProteinNone || day.Main.IsPersonal {
			t.Errorf("Expected no protein category and a non-personal dish, got %v and %v", day.Main.ProteinCategory, day.Main.IsPersonal)
		}
		if len(day.MainRecipeOptions) != 0 || len(m.SideRecipeOptions) != 0 {
			t.Error("Expected no recipe options")
		}
	})

	t.Run("SideDishes", func(t *testing.T) {
		l := scenarioMenu()
		l.Meals[0].SideDishes = []Dish{{Title: "Rice", Ingredients: []string{"1 cup rice"}, Instructions: []string{"Boil.", "Fluff."}}}
		l.Meals[0].Notes = []string{"Make extra.", "Freeze half!"}

		m, err := FromLegacy(l)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		day := m.DayMenus[0]
		if len(day.Sides) != 1 || day.Sides[0].DishType != menu.DishTypeSide {
			t.Fatalf("Expected one SIDE dish, got %+v", day.Sides)
		}
		if day.Sides[0].Instructions != "Boil.  Fluff." {
			t.Errorf("Unexpected side instructions %q", day.Sides[0].Instructions)
		}
		if day.CornerNote != "Make extra.  Freeze half!" {
			t.Errorf("Unexpected corner note %q", day.CornerNote)
		}
	})

	t.Run("EmptyNotes", func(t *testing.T) {
		l := scenarioMenu()
		l.Meals[0].Notes = []string{}
		_, err := FromLegacy(l)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Expected a ParseError, got %v", err)
		}
		if perr.Field != "notes" {
			t.Errorf("Expected field 'notes', got '%s'", perr.Field)
		}
	})

	t.Run("ServingsWithoutFamilySize", func(t *testing.T) {
		l := scenarioMenu()
		l.Servings = "Serves a crowd"
		_, err := FromLegacy(l)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Expected a ParseError, got %v", err)
		}
		if perr.Field != "servings" {
			t.Errorf("Expected field 'servings', got '%s'", perr.Field)
		}
	})

	t.Run("MissingCals", func(t *testing.T) {
		l := scenarioMenu()
		l.Meals[0].Nutrition = []string{"30g Protein", "10g Fat", "5g Fiber", "40g Carbs"}
		_, err := FromLegacy(l)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Expected a ParseError, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "meal 1: ") {
			t.Errorf("Expected the error to name the meal, got '%v'", err)
		}
	})

	t.Run("BadDate", func(t *testing.T) {
		l := scenarioMenu()
		l.Date = "Smarch 3rd 2024"
		if _, err := FromLegacy(l); err == nil {
			t.Fatal("Expected an error for an unknown month, got nil")
		}
	})

	t.Run("BadDuration", func(t *testing.T) {
		l := scenarioMenu()
		l.Meals[0].Duration = "a while"
		if _, err := FromLegacy(l); err == nil {
			t.Fatal("Expected an error for an unreadable duration, got nil")
		}
	})
}

func TestToLegacy(t *testing.T) {
	t.Run("FamilySize", func(t *testing.T) {
		m, err := FromLegacy(scenarioMenu())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		l, err := ToLegacy(m)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if l.Servings != "Serves 3 to 4" {
			t.Errorf("Expected 'Serves 3 to 4', got '%s'", l.Servings)
		}
	})

	t.Run("MissingMain", func(t *testing.T) {
		m := menu.Menu{
			StartDate: "2024-03-03",
			DayMenus:  []menu.DayMenu{{MainName: "Leftovers"}},
			MetaData:  menu.MetaData{FamilySize: 2},
		}
		_, err := ToLegacy(m)
		if !errors.Is(err, ErrMissingMain) {
			t.Fatalf("Expected ErrMissingMain, got %v", err)
		}
	})

	t.Run("BadStartDate", func(t *testing.T) {
		_, err := ToLegacy(menu.Menu{StartDate: "next sunday"})
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Expected a ParseError, got %v", err)
		}
		if perr.Field != "start_date" {
			t.Errorf("Expected field 'start_date', got '%s'", perr.Field)
		}
	})

	t.Run("TimestampStartDate", func(t *testing.T) {
		m, err := FromLegacy(scenarioMenu())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		m.StartDate = "2024-03-03T00:00:00"
		l, err := ToLegacy(m)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if l.Date != "March 3rd 2024" {
			t.Errorf("Expected 'March 3rd 2024', got '%s'", l.Date)
		}
	})
}

func TestLegacyRoundTrip(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		want := scenarioMenu()
		m, err := FromLegacy(want)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		got, err := ToLegacy(m)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Round trip changed the menu.\nExpected: %+v\nGot:      %+v", want, got)
		}
	})

	t.Run("PunctuatedNotes", func(t *testing.T) {
		want := scenarioMenu()
		want.Meals[0].Notes = []string{"Make extra.", "Freeze half!"}
		m, err := FromLegacy(want)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		got, err := ToLegacy(m)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !reflect.DeepEqual(got.Meals[0].Notes, want.Meals[0].Notes) {
			t.Errorf("Expected notes %q, got %q", want.Meals[0].Notes, got.Meals[0].Notes)
		}
	})

	// Sentence boundaries live in the punctuation, so unpunctuated notes
	// come back as a single note.
	t.Run("UnpunctuatedNotesMerge", func(t *testing.T) {
		l := scenarioMenu()
		l.Meals[0].Notes = []string{"Make extra", "Freeze half"}
		m, err := FromLegacy(l)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if m.DayMenus[0].CornerNote != "Make extra  Freeze half" {
			t.Errorf("Unexpected corner note %q", m.DayMenus[0].CornerNote)
		}
		got, err := ToLegacy(m)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := []string{"Make extra  Freeze half"}
		if !reflect.DeepEqual(got.Meals[0].Notes, want) {
			t.Errorf("Expected notes %q, got %q", want, got.Meals[0].Notes)
		}
	})

	paths, err := filepath.Glob(filepath.Join("testdata", "legacy_menus", "*.json"))
	if err != nil {
		t.Fatalf("Failed to list fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("Expected legacy menu fixtures, found none")
	}
	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".json"), func(t *testing.T) {
			var want LegacyMenu
			loadJSON(t, path, &want)

			m, err := FromLegacy(want)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			got, err := ToLegacy(m)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Round trip changed %s.\nExpected: %+v\nGot:      %+v", path, want, got)
			}
		})
	}
}

func TestWeekToLegacy(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "weeks", "*.json"))
	if err != nil {
		t.Fatalf("Failed to list fixtures: %v", err)
	}
	for _, path := range paths {
		name := filepath.Base(path)
		t.Run(strings.TrimSuffix(name, ".json"), func(t *testing.T) {
			var w week.Week
			loadJSON(t, path, &w)
			var want LegacyMenu
			loadJSON(t, filepath.Join("testdata", "legacy_menus", name), &want)

			got, err := ToLegacy(w.Menu)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Converted %s does not match its legacy fixture.\nExpected: %+v\nGot:      %+v", name, want, got)
			}
		})
	}
}
