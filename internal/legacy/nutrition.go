package legacy

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var nutrientPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)[^\d\s]*\s+(\S.*)$`)

// Nutrition is the per-serving nutrition of a day's dinner.
type Nutrition struct {
	Calories     float64
	Carbs        float64
	Fat          float64
	Fiber        float64
	Protein      float64
	SaturatedFat float64
	Sodium       float64
}

// nutrient ties a legacy label to a Nutrition field. The table order is the
// order FormatNutrition emits.
type nutrient struct {
	legacyName string
	unit       string
	field      func(*Nutrition) *float64
}

var nutrients = []nutrient{
	{"Cals", "", func(n *Nutrition) *float64 { return &n.Calories }},
	{"Protein", "g", func(n *Nutrition) *float64 { return &n.Protein }},
	{"Fat", "g", func(n *Nutrition) *float64 { return &n.Fat }},
	{"Fiber", "g", func(n *Nutrition) *float64 { return &n.Fiber }},
	{"Carbs", "g", func(n *Nutrition) *float64 { return &n.Carbs }},
}

func lookupNutrient(name string) (nutrient, int, bool) {
	for i, n := range nutrients {
		if n.legacyName == name {
			return n, i, true
		}
	}
	return nutrient{}, -1, false
}

// ParseNutrition reads strings such as "320 Cals" or "45g Protein", listed
// in the order FormatNutrition prints them.
// Saturated fat and sodium are not printed on legacy menus and stay zero.
func ParseNutrition(values []string) (Nutrition, error) {
	var result Nutrition
	seen := make(map[string]struct{}, len(nutrients))
	last := -1

	for _, value := range values {
		m := nutrientPattern.FindStringSubmatch(value)
		if m == nil {
			return Nutrition{}, parseErrorf("nutrient", value, "expected '<amount>[unit] <name>'")
		}
		name := strings.TrimSpace(m[2])
		n, idx, ok := lookupNutrient(name)
		if !ok {
			return Nutrition{}, parseErrorf("nutrient", value, "unknown nutrient %q", name)
		}
		if _, dup := seen[name]; dup {
			return Nutrition{}, parseErrorf("nutrient", value, "%s listed more than once", name)
		}
		if idx < last {
			return Nutrition{}, parseErrorf("nutrient", value, "%s must come before %s", name, nutrients[last].legacyName)
		}
		last = idx
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Nutrition{}, parseErrorf("nutrient", value, "%v", err)
		}
		*n.field(&result) = amount
		seen[name] = struct{}{}
	}

	var missing []string
	for _, n := range nutrients {
		if _, ok := seen[n.legacyName]; !ok {
			missing = append(missing, n.legacyName)
		}
	}
	if len(missing) > 0 {
		return Nutrition{}, parseErrorf("nutrition", strings.Join(values, ", "), "missing %s", strings.Join(missing, ", "))
	}

	return result, nil
}

// FormatNutrition prints n in the legacy order. Amounts are truncated toward
// zero, so 320.7 calories prints as "320 Cals".
func FormatNutrition(n Nutrition) []string {
	out := make([]string, 0, len(nutrients))
	for _, nt := range nutrients {
		amount := math.Trunc(*nt.field(&n))
		out = append(out, fmt.Sprintf("%d%s %s", int64(amount), nt.unit, nt.legacyName))
	}
	return out
}
