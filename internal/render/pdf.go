package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

var (
	numberedItemPattern = regexp.MustCompile(`^\d+\.\s`)
	tableRulePattern    = regexp.MustCompile(`^\|(\s*:?-+:?\s*\|)+$`)
	italicPattern       = regexp.MustCompile(`(^|\s)[*_]([^*_]+)[*_]($|[\s.,!])`)
	linkPattern         = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// PDFRenderer lays out the Markdown rendering of the menu on A4 pages.
type PDFRenderer struct {
	markdown *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{markdown: NewMarkdownRenderer()}
}

// Render converts the menu into PDF bytes.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	md, err := r.markdown.Render(doc)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Legacy.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// The core fonts are cp1252; translate so that accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(string(md), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(2)

		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(cleanInlineMarkdown(strings.TrimLeft(trimmed, "# "))), level)

		case tableRulePattern.MatchString(trimmed):
			continue

		case strings.HasPrefix(trimmed, "|"):
			renderTableRow(pdf, tr, trimmed)

		case strings.HasPrefix(trimmed, "> "):
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(90, 90, 90)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed[2:])), "", "L", false)
			pdf.SetTextColor(0, 0, 0)

		case strings.HasPrefix(trimmed, "- [x] "), strings.HasPrefix(trimmed, "- [ ] "):
			pdf.SetFont("ZapfDingbats", "", 10)
			box := "o"
			if trimmed[3] == 'x' {
				box = "4"
			}
			pdf.CellFormat(6, 5, box, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed[6:])), "", "L", false)

		case strings.HasPrefix(trimmed, "- "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)

		case numberedItemPattern.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(1)
}

// renderTableRow draws a two column row of the ingredients table.
func renderTableRow(pdf *gofpdf.Fpdf, tr func(string) string, row string) {
	cells := strings.Split(strings.Trim(row, "|"), " | ")
	widths := []float64{110, 70}
	pdf.SetFont("Helvetica", "", 9)
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		text := strings.ReplaceAll(strings.TrimSpace(cell), `\|`, "|")
		pdf.CellFormat(widths[i], 6, tr(text), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicPattern.ReplaceAllString(text, "$1$2$3")
	text = linkPattern.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
