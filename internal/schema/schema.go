// Package schema validates menu documents against their JSON schemas before
// they are decoded into typed values.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const baseURL = "https://dinner-daily.local/schemas/"

// Entity names a document shape with a schema.
type Entity string

const (
	LegacyMenu Entity = "legacy_menu"
	Week       Entity = "week"
)

func (e Entity) url() string {
	return baseURL + string(e) + ".schema.json"
}

// Problem is one schema violation.
type Problem struct {
	Path    string
	Message string
}

// ValidationError reports a document that does not match its schema.
type ValidationError struct {
	Entity   Entity
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Path == "" {
			parts = append(parts, p.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", p.Path, p.Message))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// Validator holds the compiled schemas.
type Validator struct {
	schemas map[Entity]*jsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	entities := []Entity{LegacyMenu, Week}
	for _, e := range entities {
		data, err := schemaFS.ReadFile("schemas/" + string(e) + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schema: %w", e, err)
		}
		if err := compiler.AddResource(e.url(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add %s schema: %w", e, err)
		}
	}

	v := &Validator{schemas: make(map[Entity]*jsonschema.Schema, len(entities))}
	for _, e := range entities {
		s, err := compiler.Compile(e.url())
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", e, err)
		}
		v.schemas[e] = s
	}
	return v, nil
}

// Validate checks doc, which may be any value that marshals to JSON.
func (v *Validator) Validate(entity Entity, doc any) error {
	s, ok := v.schemas[entity]
	if !ok {
		return fmt.Errorf("unknown entity %q", entity)
	}

	// The validator only understands the generic types encoding/json decodes to.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", entity, err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", entity, err)
	}

	if err := s.Validate(generic); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("failed to validate %s: %w", entity, err)
		}
		return &ValidationError{Entity: entity, Problems: collectProblems(ve, nil)}
	}
	return nil
}

// Decode validates raw JSON and then unmarshals it into out.
func (v *Validator) Decode(entity Entity, data []byte, out any) error {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return &ValidationError{Entity: entity, Problems: []Problem{{Message: err.Error()}}}
	}
	if err := v.Validate(entity, generic); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ValidationError{Entity: entity, Problems: []Problem{{Message: err.Error()}}}
	}
	return nil
}

// collectProblems flattens the cause tree into its leaves.
func collectProblems(err *jsonschema.ValidationError, dst []Problem) []Problem {
	if len(err.Causes) == 0 {
		return append(dst, Problem{Path: pointerToPath(err.InstanceLocation), Message: err.Message})
	}
	for _, cause := range err.Causes {
		dst = collectProblems(cause, dst)
	}
	return dst
}

// pointerToPath turns "/meals/0/duration" into "meals[0].duration".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
