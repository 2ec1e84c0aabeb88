package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/menu.md.tmpl
var markdownTemplate string

var markdownFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"cell": func(s string) string {
		return strings.ReplaceAll(s, "|", `\|`)
	},
}

// MarkdownRenderer renders the weekly menu as GitHub flavored Markdown.
type MarkdownRenderer struct {
	tmpl *template.Template
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		tmpl: template.Must(template.New("menu.md").Funcs(markdownFuncs).Parse(markdownTemplate)),
	}
}

// Render executes the menu template.
func (r *MarkdownRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, newMenuView(doc)); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
