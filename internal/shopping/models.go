package shopping

import "fmt"

// StoreSection is an aisle grouping of the shopping list.
type StoreSection string

const (
	SectionProduce     StoreSection = "produce"
	SectionGrocery     StoreSection = "grocery"
	SectionStaples     StoreSection = "staples"
	SectionMeatPoultry StoreSection = "meat_poultry"
	SectionSeafood     StoreSection = "seafood"
	SectionFrozenFoods StoreSection = "frozen_foods"
	SectionOther       StoreSection = "other"
	SectionDairy       StoreSection = "dairy"
)

// AllStoreSections lists every section in the order a shopper walks the store.
func AllStoreSections() []StoreSection {
	return []StoreSection{
		SectionProduce,
		SectionGrocery,
		SectionStaples,
		SectionMeatPoultry,
		SectionSeafood,
		SectionFrozenFoods,
		SectionOther,
		SectionDairy,
	}
}

// Label returns the display name of the section.
func (s StoreSection) Label() string {
	switch s {
	case SectionProduce:
		return "Produce"
	case SectionGrocery:
		return "Grocery"
	case SectionStaples:
		return "Staples"
	case SectionMeatPoultry:
		return "Meat & Poultry"
	case SectionSeafood:
		return "Seafood"
	case SectionFrozenFoods:
		return "Frozen Foods"
	case SectionOther:
		return "Other"
	case SectionDairy:
		return "Dairy"
	default:
		return string(s)
	}
}

// RecipeItem links a shopping list item back to the recipe that needs it.
type RecipeItem struct {
	RecipeID           int    `json:"recipe_id"`
	RecipeName         string `json:"recipe_name"`
	ShoppingListItemID int    `json:"shopping_list_item_id"`
}

// Item is a single line of the shopping list.
type Item struct {
	Brand           string  `json:"brand"`
	Cost            float64 `json:"cost"`
	DishType        int     `json:"dish_type"`
	FormattedAmount string  `json:"formatted_amount"`
	ID              int     `json:"id"`
	IsChecked       bool    `json:"is_checked"`
	IsFulfilled     bool    `json:"is_fulfilled"`
	IsOnSale        bool    `json:"is_on_sale"`
	IsOptional      bool    `json:"is_optional"`
	Name            string  `json:"name"`
	Notes           string  `json:"notes"`
}

// DisplayName is the checklist text for the item, e.g. "Onion (2 medium)".
func (i Item) DisplayName() string {
	return fmt.Sprintf("%s (%s)", i.Name, i.FormattedAmount)
}

// ShoppingList is the week's shopping list grouped by store section.
type ShoppingList struct {
	Dairy       []Item `json:"dairy"`
	FrozenFoods []Item `json:"frozen_foods"`
	Grocery     []Item `json:"grocery"`
	MeatPoultry []Item `json:"meat_poultry"`
	Produce     []Item `json:"produce"`
	Seafood     []Item `json:"seafood"`
	Staples     []Item `json:"staples"`
	Other       []Item `json:"other"`

	DairyFulfilled       bool `json:"dairy_fulfilled"`
	FrozenFoodsFulfilled bool `json:"frozen_foods_fulfilled"`
	GroceryFulfilled     bool `json:"grocery_fulfilled"`
	MeatPoultryFulfilled bool `json:"meat_poultry_fulfilled"`
	ProduceFulfilled     bool `json:"produce_fulfilled"`
	SeafoodFulfilled     bool `json:"seafood_fulfilled"`
	StaplesFulfilled     bool `json:"staples_fulfilled"`
	// The API omits other_fulfilled.
	OtherFulfilled bool `json:"other_fulfilled,omitempty"`

	RecipeShopItems []RecipeItem `json:"recipe_shop_items"`
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	CostEnabled     bool         `json:"cost_enabled"`
}

// Section returns the items of a section and whether it has been fulfilled.
func (l ShoppingList) Section(s StoreSection) ([]Item, bool) {
	switch s {
	case SectionProduce:
		return l.Produce, l.ProduceFulfilled
	case SectionGrocery:
		return l.Grocery, l.GroceryFulfilled
	case SectionStaples:
		return l.Staples, l.StaplesFulfilled
	case SectionMeatPoultry:
		return l.MeatPoultry, l.MeatPoultryFulfilled
	case SectionSeafood:
		return l.Seafood, l.SeafoodFulfilled
	case SectionFrozenFoods:
		return l.FrozenFoods, l.FrozenFoodsFulfilled
	case SectionOther:
		return l.Other, l.OtherFulfilled
	case SectionDairy:
		return l.Dairy, l.DairyFulfilled
	default:
		return nil, false
	}
}

// Len counts the items across all sections.
func (l ShoppingList) Len() int {
	n := 0
	for _, s := range AllStoreSections() {
		items, _ := l.Section(s)
		n += len(items)
	}
	return n
}
