package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dinner-daily/internal/app"
	"dinner-daily/internal/render"

	"github.com/spf13/cobra"
)

// Output format flags, shared by render and export.
var (
	flagJSON       bool
	flagMarkdown   bool
	flagHTML       bool
	flagPDF        bool
	flagStructured bool
)

var renderCmd = &cobra.Command{
	Use:   "render <source> [output]",
	Short: "Render a menu as JSON, Markdown, HTML or PDF",
	Long: `Render loads a legacy HTML page, a legacy JSON menu or a structured week and
writes it in the chosen format. HTML is the default.

Without an output path, or with "-", the result goes to standard output.
Without a format flag, the format is taken from the output path's extension
when it has one.

Examples:
  dinner-daily render menu.html --json
  dinner-daily render week.json menu.pdf
  dinner-daily render week.json --json --structured > week.out.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addFormatFlags(renderCmd)
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	cmd.Flags().BoolVar(&flagHTML, "html", false, "Output HTML (default)")
	cmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	cmd.Flags().BoolVar(&flagStructured, "structured", false, "Emit the structured week instead of the legacy menu (JSON only)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown", "html", "pdf")
}

func runRender(cmd *cobra.Command, args []string) error {
	src := args[0]
	dst := ""
	if len(args) == 2 {
		dst = args[1]
	}

	format, err := selectFormat(dst)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	a, err := rt.app(deps{})
	if err != nil {
		return err
	}

	opts := app.RenderOptions{Format: format, Structured: flagStructured}
	return writeOutput(cmd.OutOrStdout(), dst, func(w io.Writer) error {
		return a.Render(cmd.Context(), src, opts, w)
	})
}

// selectFormat honours the format flags, then the output extension, then
// falls back to HTML.
func selectFormat(dst string) (render.Format, error) {
	switch {
	case flagJSON:
		return render.FormatJSON, nil
	case flagMarkdown:
		return render.FormatMarkdown, nil
	case flagPDF:
		return render.FormatPDF, nil
	case flagHTML:
		return render.FormatHTML, nil
	}
	if ext := filepath.Ext(dst); dst != "-" && ext != "" {
		return render.ParseFormat(ext)
	}
	return render.FormatHTML, nil
}

// writeOutput runs fn against stdout when dst is empty or "-". Otherwise the
// output is buffered and written to dst only once fn succeeds, so a failed
// render neither leaves a partial file nor touches one that already exists.
func writeOutput(stdout io.Writer, dst string, fn func(io.Writer) error) error {
	if dst == "" || dst == "-" {
		return fn(stdout)
	}

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	fmt.Fprintln(os.Stderr, dst)
	return nil
}
