// Package loader reads a weekly menu from a legacy HTML page, a legacy JSON
// menu or a structured week.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dinner-daily/internal/extract"
	"dinner-daily/internal/legacy"
	"dinner-daily/internal/menu"
	"dinner-daily/internal/schema"
	"dinner-daily/internal/week"
)

// Source is a loaded menu. Legacy is always set; Week only when the input
// was a structured week.
type Source struct {
	Legacy legacy.LegacyMenu
	Week   *week.Week
}

// Menu returns the structured menu, converting the legacy form when no
// structured week was loaded.
func (s Source) Menu() (menu.Menu, error) {
	if s.Week != nil {
		return s.Week.Menu, nil
	}
	return legacy.FromLegacy(s.Legacy)
}

// Loader turns files into Sources.
type Loader struct {
	validator *schema.Validator
	extractor *extract.Extractor
}

// New creates a Loader.
func New(validator *schema.Validator, extractor *extract.Extractor) *Loader {
	return &Loader{validator: validator, extractor: extractor}
}

// Load reads path. A .json file is read as a legacy menu first and as a
// structured week second; anything else is treated as a legacy HTML page.
func (l *Loader) Load(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return l.LoadJSON(data)
	}
	return l.LoadHTML(string(data))
}

// LoadJSON reads a legacy menu or, failing that, a structured week.
func (l *Loader) LoadJSON(data []byte) (Source, error) {
	var lm legacy.LegacyMenu
	legacyErr := l.validator.Decode(schema.LegacyMenu, data, &lm)
	if legacyErr == nil {
		return Source{Legacy: lm}, nil
	}

	var w week.Week
	if err := l.validator.Decode(schema.Week, data, &w); err != nil {
		return Source{}, errors.Join(legacyErr, err)
	}
	lm, err := legacy.ToLegacy(w.Menu)
	if err != nil {
		return Source{}, fmt.Errorf("failed to convert week to legacy menu: %w", err)
	}
	return Source{Legacy: lm, Week: &w}, nil
}

// LoadHTML extracts a legacy menu from a menu page.
func (l *Loader) LoadHTML(page string) (Source, error) {
	doc, err := l.extractor.Extract(page)
	if err != nil {
		return Source{}, fmt.Errorf("failed to extract menu: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return Source{}, fmt.Errorf("failed to marshal extracted menu: %w", err)
	}

	var lm legacy.LegacyMenu
	if err := l.validator.Decode(schema.LegacyMenu, data, &lm); err != nil {
		return Source{}, err
	}
	return Source{Legacy: lm}, nil
}
