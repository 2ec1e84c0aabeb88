package week

import (
	"fmt"

	"dinner-daily/internal/menu"
	"dinner-daily/internal/shopping"
)

// Option selects which week the menu API returns.
type Option string

const (
	OptionPrevious Option = "previous"
	OptionCurrent  Option = "current"
)

// ParseOption validates a week option given on the command line.
func ParseOption(s string) (Option, error) {
	switch Option(s) {
	case OptionPrevious, OptionCurrent:
		return Option(s), nil
	default:
		return "", fmt.Errorf("invalid week option %q: expected %q or %q", s, OptionPrevious, OptionCurrent)
	}
}

// Week is the unit exchanged with the menu API: a menu and its shopping list.
type Week struct {
	Menu         menu.Menu             `json:"menu"`
	ShoppingList shopping.ShoppingList `json:"shopping_list"`
}
