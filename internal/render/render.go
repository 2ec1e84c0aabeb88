// Package render turns a loaded weekly menu into JSON, Markdown, HTML or PDF.
package render

import (
	"fmt"
	"strings"
	"time"

	"dinner-daily/internal/legacy"
	"dinner-daily/internal/menu"
	"dinner-daily/internal/shopping"
)

// Format is an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts a format name or its usual file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown render format %q", s)
	}
}

// Document is everything a renderer may draw from. Legacy and Menu describe
// the same week; ShoppingList is only known when a structured week was loaded.
type Document struct {
	Legacy       legacy.LegacyMenu
	Menu         menu.Menu
	ShoppingList *shopping.ShoppingList
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md").
	Extension() string
}

// New returns the renderer for format. structured only affects JSON output.
func New(format Format, structured bool) (Renderer, error) {
	switch format {
	case FormatJSON:
		return NewJSONRenderer(structured), nil
	case FormatMarkdown:
		return NewMarkdownRenderer(), nil
	case FormatHTML:
		return NewHTMLRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown render format %q", format)
	}
}

// menuView is the template data shared by the Markdown and HTML renderers.
type menuView struct {
	Title       string
	Date        string
	Store       string
	Servings    string
	Days        []dayView
	Ingredients []IngredientRow
	Sections    []sectionView
}

type dayView struct {
	Anchor    string
	Heading   string
	Duration  string
	Nutrition string
	Notes     []string
	Main      *dishView
	Sides     []dishView
}

type dishView struct {
	Name         string
	Protein      string
	Time         string
	Ingredients  []string
	Instructions []string
}

type sectionView struct {
	Label string
	Items []shopping.Item
}

func newMenuView(doc Document) menuView {
	start, err := doc.Menu.StartTime()
	hasStart := err == nil

	v := menuView{
		Title:       doc.Legacy.Title,
		Date:        doc.Legacy.Date,
		Store:       doc.Legacy.Store,
		Servings:    doc.Legacy.Servings,
		Ingredients: IngredientsTable(doc.Menu),
	}

	for i, day := range doc.Menu.DayMenus {
		dv := dayView{
			Anchor:    fmt.Sprintf("day-%d", i+1),
			Heading:   fmt.Sprintf("Day %d", i+1),
			Duration:  legacy.FormatDuration(day.TimeToTable),
			Nutrition: strings.Join(legacy.FormatNutrition(nutritionOf(day)), ", "),
		}
		if hasStart {
			dv.Heading = dayHeading(start.AddDate(0, 0, i))
		}
		if day.CornerNote != "" {
			dv.Notes = legacy.SplitSentences(day.CornerNote)
		}
		if day.Main != nil {
			main := newDishView(*day.Main)
			dv.Main = &main
		}
		for _, side := range day.Sides {
			dv.Sides = append(dv.Sides, newDishView(side))
		}
		v.Days = append(v.Days, dv)
	}

	if doc.ShoppingList != nil {
		for _, s := range shopping.AllStoreSections() {
			items, _ := doc.ShoppingList.Section(s)
			if len(items) == 0 {
				continue
			}
			v.Sections = append(v.Sections, sectionView{Label: s.Label(), Items: items})
		}
	}

	return v
}

func newDishView(d menu.Dish) dishView {
	dv := dishView{
		Name:         d.Name,
		Protein:      d.ProteinCategory.Label(),
		Ingredients:  d.Ingredients,
		Instructions: legacy.SplitSentences(d.Instructions),
	}
	if d.TotalTime() > 0 {
		dv.Time = fmt.Sprintf("%d min prep + %d min cooking", int(d.PreparationTime), int(d.CookingTime))
	}
	return dv
}

func nutritionOf(day menu.DayMenu) legacy.Nutrition {
	return legacy.Nutrition{
		Calories: day.Calories,
		Carbs:    day.Carbs,
		Fat:      day.Fat,
		Fiber:    day.Fiber,
		Protein:  day.Protein,
	}
}

// dayHeading formats a day as "Sunday, March 3rd".
func dayHeading(t time.Time) string {
	return fmt.Sprintf("%s, %s %s", t.Weekday(), t.Month(), legacy.Ordinal(t.Day()))
}
