package schema

import (
	"errors"
	"strings"
	"testing"
)

const validLegacy = `{
	"date": "March 3rd 2024",
	"servings": "Serves 3 to 4",
	"store": "Publix",
	"title": "Weeknight Plan",
	"meals": [{
		"duration": "45 mins",
		"notes": null,
		"main_dish": {"title": "Tacos", "ingredients": ["1 lb beef"], "instructions": ["Brown the beef."]},
		"nutrition": ["320 Cals", "30g Protein", "10g Fat", "5g Fiber", "40g Carbs"],
		"side_dishes": []
	}]
}`

const validWeek = `{
	"menu": {
		"id": 1,
		"start_date": "2024-03-03",
		"end_date": "2024-03-10",
		"name": "Weeknight Plan",
		"metadata": {"env": "Publix", "family_size": 4},
		"day_menus": [{
			"calories": 320, "carbs": 40, "corner_note": "", "fat": 10, "fiber": 5, "id": 1,
			"protein": 30, "saturated_fat": 2, "sodium": 600, "time_to_table": 45,
			"main_name": "Tacos",
			"main": {
				"cooking_time": 20, "dish_type": 1, "id": 9, "ingredients": ["1 lb beef"],
				"instructions": "Brown the beef.", "is_personal": false, "name": "Tacos",
				"preparation_time": 10, "protein_category": null
			},
			"sides": []
		}]
	},
	"shopping_list": {
		"id": 2, "name": "List",
		"dairy": [], "frozen_foods": [], "grocery": [], "meat_poultry": [
			{"formatted_amount": "1 lb", "id": 1, "is_checked": false, "name": "Ground Beef"}
		],
		"produce": [], "seafood": [], "staples": [], "other": [],
		"dairy_fulfilled": false, "frozen_foods_fulfilled": false, "grocery_fulfilled": false,
		"meat_poultry_fulfilled": false, "produce_fulfilled": false, "seafood_fulfilled": false,
		"staples_fulfilled": false
	}
}`

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("Expected no error compiling schemas, got %v", err)
	}
	return v
}

func TestValidate(t *testing.T) {
	v := newValidator(t)

	t.Run("LegacyMenu", func(t *testing.T) {
		var out map[string]any
		if err := v.Decode(LegacyMenu, []byte(validLegacy), &out); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if out["title"] != "Weeknight Plan" {
			t.Errorf("Expected title 'Weeknight Plan', got '%v'", out["title"])
		}
	})

	t.Run("Week", func(t *testing.T) {
		var out map[string]any
		if err := v.Decode(Week, []byte(validWeek), &out); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("WeekIsNotLegacy", func(t *testing.T) {
		var out map[string]any
		err := v.Decode(LegacyMenu, []byte(validWeek), &out)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Expected a ValidationError, got %v", err)
		}
		if ve.Entity != LegacyMenu {
			t.Errorf("Expected entity 'legacy_menu', got '%s'", ve.Entity)
		}
		if len(ve.Problems) == 0 {
			t.Error("Expected at least one problem")
		}
	})

	t.Run("ProblemPath", func(t *testing.T) {
		doc := map[string]any{
			"date":     "March 3rd 2024",
			"servings": "Serves 3 to 4",
			"store":    "Publix",
			"title":    "Plan",
			"meals": []map[string]any{{
				"duration":    45,
				"main_dish":   map[string]any{"title": "Tacos", "ingredients": []string{}, "instructions": []string{}},
				"nutrition":   []string{},
				"side_dishes": []any{},
			}},
		}
		err := v.Validate(LegacyMenu, doc)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Expected a ValidationError, got %v", err)
		}
		found := false
		for _, p := range ve.Problems {
			if p.Path == "meals[0].duration" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a problem at 'meals[0].duration', got %+v", ve.Problems)
		}
		if !strings.Contains(err.Error(), "meals[0].duration") {
			t.Errorf("Expected the message to name the path, got '%v'", err)
		}
	})

	t.Run("EmptyNotes", func(t *testing.T) {
		var out map[string]any
		doc := strings.Replace(validLegacy, `"notes": null`, `"notes": []`, 1)
		err := v.Decode(LegacyMenu, []byte(doc), &out)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Expected a ValidationError, got %v", err)
		}
		if !strings.Contains(err.Error(), "meals[0].notes") {
			t.Errorf("Expected the message to name 'meals[0].notes', got '%v'", err)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		var out map[string]any
		err := v.Decode(Week, []byte(`{"menu": `), &out)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Expected a ValidationError, got %v", err)
		}
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		if err := v.Validate(Entity("recipe"), map[string]any{}); err == nil {
			t.Fatal("Expected an error for an unknown entity, got nil")
		}
	})
}

func TestPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                         "",
		"/":                        "",
		"/meals/0/duration":        "meals[0].duration",
		"#/menu/day_menus/2/main":  "menu.day_menus[2].main",
		"/shopping_list/a~1b/c~0d": "shopping_list.a/b.c~d",
	}
	for in, want := range tests {
		if got := pointerToPath(in); got != want {
			t.Errorf("pointerToPath(%q): expected '%s', got '%s'", in, want, got)
		}
	}
}
