package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dinner-daily/internal/week"
)

// JSONRenderer writes the legacy menu, or the structured form when
// Structured is set, with sorted keys and four-space indentation.
type JSONRenderer struct {
	Structured bool
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(structured bool) *JSONRenderer {
	return &JSONRenderer{Structured: structured}
}

// Render encodes the document.
func (r *JSONRenderer) Render(doc Document) ([]byte, error) {
	var v any = doc.Legacy
	if r.Structured {
		if doc.ShoppingList != nil {
			v = week.Week{Menu: doc.Menu, ShoppingList: *doc.ShoppingList}
		} else {
			v = doc.Menu
		}
	}
	return MarshalSorted(v)
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// MarshalSorted encodes v with object keys in lexical order at every level.
func MarshalSorted(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	// encoding/json writes map keys sorted, so a trip through a generic
	// value sorts struct fields as well.
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}
