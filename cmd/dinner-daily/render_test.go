package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"dinner-daily/internal/render"
)

func resetFormatFlags() {
	flagJSON, flagMarkdown, flagHTML, flagPDF, flagStructured = false, false, false, false, false
}

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		name  string
		set   func()
		dst   string
		want  render.Format
		isErr bool
	}{
		{"Default", func() {}, "", render.FormatHTML, false},
		{"Stdout", func() {}, "-", render.FormatHTML, false},
		{"FromExtension", func() {}, "out/menu.md", render.FormatMarkdown, false},
		{"FlagWins", func() { flagJSON = true }, "menu.pdf", render.FormatJSON, false},
		{"UnknownExtension", func() {}, "menu.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFormatFlags()
			defer resetFormatFlags()
			tt.set()

			got, err := selectFormat(tt.dst)
			if (err != nil) != tt.isErr {
				t.Fatalf("Expected error %v, got %v", tt.isErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	writeMenu := func(w io.Writer) error {
		_, err := w.Write([]byte("# Menu\n"))
		return err
	}

	t.Run("DefaultsToStdout", func(t *testing.T) {
		for _, dst := range []string{"", "-"} {
			var stdout bytes.Buffer
			if err := writeOutput(&stdout, dst, writeMenu); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if stdout.String() != "# Menu\n" {
				t.Errorf("Expected the menu on stdout for %q, got %q", dst, stdout.String())
			}
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to list %s: %v", dir, err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected no files to be written, got %d", len(entries))
		}
	})

	t.Run("File", func(t *testing.T) {
		dst := filepath.Join(dir, "menu.md")
		var stdout bytes.Buffer
		if err := writeOutput(&stdout, dst, writeMenu); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatalf("Expected %s to be written, got %v", dst, err)
		}
		if string(data) != "# Menu\n" {
			t.Errorf("Unexpected content %q", data)
		}
		if stdout.Len() != 0 {
			t.Errorf("Expected nothing on stdout, got %q", stdout.String())
		}
	})

	t.Run("NoFileOnFailure", func(t *testing.T) {
		dst := filepath.Join(dir, "broken.pdf")
		err := writeOutput(io.Discard, dst, func(w io.Writer) error { return io.ErrUnexpectedEOF })
		if err == nil {
			t.Fatal("Expected an error, got nil")
		}
		if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
			t.Errorf("Expected no %s after a failed render, got %v", dst, statErr)
		}
	})

	t.Run("KeepsExistingFileOnFailure", func(t *testing.T) {
		dst := filepath.Join(dir, "menu.html")
		if err := os.WriteFile(dst, []byte("<p>last week</p>"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", dst, err)
		}
		err := writeOutput(io.Discard, dst, func(w io.Writer) error {
			w.Write([]byte("<p>half"))
			return io.ErrUnexpectedEOF
		})
		if err == nil {
			t.Fatal("Expected an error, got nil")
		}
		data, err := os.ReadFile(dst)
		if err != nil {
			t.Fatalf("Expected %s to survive, got %v", dst, err)
		}
		if string(data) != "<p>last week</p>" {
			t.Errorf("Expected the existing content to be untouched, got %q", data)
		}
	})
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("DINNER_DAILY_CONFIG", "")
	resetFormatFlags()
	defer resetFormatFlags()

	dst := filepath.Join(t.TempDir(), "winter.json")
	rootCmd.SetArgs([]string{"render", "../../internal/legacy/testdata/legacy_menus/winter.json", dst, "--json"})
	rootCmd.SetOut(&bytes.Buffer{})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Expected output file, got %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Expected JSON, got %v", err)
	}
	if out["title"] != "Cozy Winter Week" {
		t.Errorf("Expected title 'Cozy Winter Week', got %v", out["title"])
	}
}

func TestRenderCommandStdout(t *testing.T) {
	t.Setenv("DINNER_DAILY_CONFIG", "")
	resetFormatFlags()
	defer resetFormatFlags()

	var stdout bytes.Buffer
	rootCmd.SetArgs([]string{"render", "../../internal/legacy/testdata/legacy_menus/winter.json", "--json"})
	rootCmd.SetOut(&stdout)
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("Expected JSON on stdout, got %v", err)
	}
	if out["title"] != "Cozy Winter Week" {
		t.Errorf("Expected title 'Cozy Winter Week', got %v", out["title"])
	}
}
