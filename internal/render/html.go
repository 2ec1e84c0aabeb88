package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed templates/menu.html.tmpl
var htmlTemplate string

// HTMLRenderer renders a standalone HTML page with a table of contents
// linking each day and the closing tables.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("menu.html").Parse(htmlTemplate)),
	}
}

// Render executes the page template.
func (r *HTMLRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, newMenuView(doc)); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
