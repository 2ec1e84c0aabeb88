package legacy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var datePattern = regexp.MustCompile(`^([A-Za-z]+)\s+(\d+)(?:st|nd|rd|th)?\s+(\d+)$`)

// ParseDate reads an ordinal date such as "March 3rd 2024".
func ParseDate(text string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return time.Time{}, parseErrorf("date", text, "expected '<Month> <Day>[st|nd|rd|th] <Year>'")
	}

	month, ok := lookupMonth(m[1])
	if !ok {
		return time.Time{}, parseErrorf("date", text, "unknown month %q", m[1])
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, parseErrorf("date", text, "%v", err)
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, parseErrorf("date", text, "%v", err)
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow, e.g. February 30th becomes March 1st.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, parseErrorf("date", text, "%s has no day %d", month, day)
	}
	return t, nil
}

// FormatDate prints t as "March 3rd 2024".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %s %d", t.Month(), Ordinal(t.Day()), t.Year())
}

// Ordinal appends the English ordinal suffix: 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	return strconv.Itoa(n) + ordinalSuffix(n)
}

func ordinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	if last2 := n % 100; last2 >= 11 && last2 <= 20 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func lookupMonth(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}
