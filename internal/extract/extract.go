// Package extract reads a legacy weekly menu page into the loose document
// shape of a legacy menu. The result is validated by the caller.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
)

// ErrNoMeals is returned for pages without any meal blocks.
var ErrNoMeals = errors.New("no meals found in menu page")

// headerFields maps legacy menu keys to the elements that hold them.
var headerFields = []struct {
	key      string
	selector string
}{
	{"title", ".menu-title"},
	{"date", ".menu-date"},
	{"store", ".menu-store"},
	{"servings", ".menu-servings"},
}

// noiseSelectors are dropped before anything is read.
var noiseSelectors = []string{"script", "style", "noscript", "img", "picture", "svg", "button", "form"}

// Extractor reads legacy menu pages.
type Extractor struct {
	conv *converter.Converter
}

// New creates an Extractor. Menu text is kept verbatim, so Markdown escaping
// is turned off: "350*F" stays "350*F" rather than "350\*F".
func New() *Extractor {
	return &Extractor{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
			converter.WithEscapeMode(converter.EscapeModeDisabled),
		),
	}
}

// Extract parses html and returns a map with the keys of a legacy menu.
// Header fields that are missing from the page are left out of the map.
func (e *Extractor) Extract(html string) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu page: %w", err)
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	out := make(map[string]any)
	for _, f := range headerFields {
		if s := doc.Find(f.selector).First(); s.Length() > 0 {
			out[f.key] = cleanText(s.Text())
		}
	}
	if _, ok := out["title"]; !ok {
		if h1 := doc.Find("h1").First(); h1.Length() > 0 {
			out["title"] = cleanText(h1.Text())
		}
	}

	mealNodes := doc.Find(".meal")
	if mealNodes.Length() == 0 {
		return nil, ErrNoMeals
	}

	meals := make([]any, 0, mealNodes.Length())
	var extractErr error
	mealNodes.EachWithBreak(func(i int, s *goquery.Selection) bool {
		meal, err := e.extractMeal(s)
		if err != nil {
			extractErr = fmt.Errorf("meal %d: %w", i+1, err)
			return false
		}
		meals = append(meals, meal)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}
	out["meals"] = meals

	return out, nil
}

func (e *Extractor) extractMeal(s *goquery.Selection) (map[string]any, error) {
	meal := map[string]any{
		"nutrition": textList(s.Find(".meal-nutrition li")),
	}
	if d := s.Find(".meal-duration").First(); d.Length() > 0 {
		meal["duration"] = cleanText(d.Text())
	}

	notes, err := e.markdownList(s.Find(".meal-notes p"))
	if err != nil {
		return nil, err
	}
	if len(notes) > 0 {
		meal["notes"] = notes
	} else {
		meal["notes"] = nil
	}

	if main := s.Find(".dish.main-dish").First(); main.Length() > 0 {
		dish, err := e.extractDish(main)
		if err != nil {
			return nil, err
		}
		meal["main_dish"] = dish
	}

	sides := []any{}
	var sideErr error
	s.Find(".dish.side-dish").EachWithBreak(func(_ int, side *goquery.Selection) bool {
		dish, err := e.extractDish(side)
		if err != nil {
			sideErr = err
			return false
		}
		sides = append(sides, dish)
		return true
	})
	if sideErr != nil {
		return nil, sideErr
	}
	meal["side_dishes"] = sides

	return meal, nil
}

func (e *Extractor) extractDish(s *goquery.Selection) (map[string]any, error) {
	instructions, err := e.markdownList(s.Find(".dish-instructions li"))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"title":        cleanText(s.Find(".dish-title").First().Text()),
		"ingredients":  textList(s.Find(".dish-ingredients li")),
		"instructions": instructions,
	}, nil
}

// textList returns the plain text of each element.
func textList(s *goquery.Selection) []any {
	out := []any{}
	s.Each(func(_ int, item *goquery.Selection) {
		if text := cleanText(item.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// markdownList converts the inner HTML of each element to Markdown so that
// emphasis and links in notes and instructions survive.
func (e *Extractor) markdownList(s *goquery.Selection) ([]any, error) {
	out := []any{}
	var convErr error
	s.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		inner, err := item.Html()
		if err != nil {
			convErr = fmt.Errorf("failed to read menu text: %w", err)
			return false
		}
		md, err := e.conv.ConvertString(inner)
		if err != nil {
			convErr = fmt.Errorf("failed to convert menu text to markdown: %w", err)
			return false
		}
		if text := cleanText(md); text != "" {
			out = append(out, text)
		}
		return true
	})
	return out, convErr
}

// cleanText collapses runs of whitespace, including line breaks, to one space.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
