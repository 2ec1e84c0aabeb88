package legacy

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// hoursThreshold is the point from which durations print in hours.
const hoursThreshold = 120

var durationTermPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([A-Za-z]+)`)

// durationUnits maps unit spellings to their length in minutes.
var durationUnits = map[string]float64{
	"m":       1,
	"min":     1,
	"mins":    1,
	"minute":  1,
	"minutes": 1,
	"h":       60,
	"hr":      60,
	"hrs":     60,
	"hour":    60,
	"hours":   60,
}

// ParseDuration converts "45 mins", "2 hrs" or "1 hr 30 mins" to minutes.
func ParseDuration(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, parseErrorf("duration", text, "empty duration")
	}

	matches := durationTermPattern.FindAllStringSubmatchIndex(trimmed, -1)
	if matches == nil {
		return 0, parseErrorf("duration", text, "expected '<amount> <unit>'")
	}

	var total float64
	end := 0
	for _, m := range matches {
		if strings.TrimSpace(trimmed[end:m[0]]) != "" {
			return 0, parseErrorf("duration", text, "unexpected %q", strings.TrimSpace(trimmed[end:m[0]]))
		}
		amount, err := strconv.ParseFloat(trimmed[m[2]:m[3]], 64)
		if err != nil {
			return 0, parseErrorf("duration", text, "%v", err)
		}
		unit := strings.ToLower(trimmed[m[4]:m[5]])
		factor, ok := durationUnits[unit]
		if !ok {
			return 0, parseErrorf("duration", text, "unknown unit %q", unit)
		}
		total += amount * factor
		end = m[1]
	}
	if rest := strings.TrimSpace(trimmed[end:]); rest != "" {
		return 0, parseErrorf("duration", text, "unexpected %q", rest)
	}

	return total, nil
}

// FormatDuration prints minutes the way legacy menus do: "119 mins", then
// whole hours ("2 hrs") from two hours on. Both branches truncate.
func FormatDuration(minutes float64) string {
	if minutes < hoursThreshold {
		return fmt.Sprintf("%d mins", int64(math.Trunc(minutes)))
	}
	return fmt.Sprintf("%d hrs", int64(math.Trunc(minutes/60)))
}
