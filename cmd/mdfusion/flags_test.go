package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdfusion/internal/config"
)

func mustParse(t *testing.T, args []string) *cliFlags {
	t.Helper()
	f, err := parseKnownFlags(args)
	if err != nil {
		t.Fatalf("parseKnownFlags(%v) error = %v", args, err)
	}
	return f
}

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	printUsage(&sb)
	out := sb.String()
	for _, want := range []string{"Usage: mdfusion", "--config-path", "--presentation", "pandoc"} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q:\n%s", want, out)
		}
	}
}

func TestParseKnownFlags(t *testing.T) {
	t.Parallel()

	t.Run("own flags are parsed", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, []string{
			"notes",
			"--output", "book.pdf",
			"--title-page",
			"-t", "My Book",
			"--toc",
			"-v",
		})

		if f.rootDir != "notes" {
			t.Errorf("rootDir = %q", f.rootDir)
		}
		if f.document.output != "book.pdf" {
			t.Errorf("output = %q", f.document.output)
		}
		if !f.document.titlePage || !f.document.toc || !f.common.verbose {
			t.Error("bool flags not set")
		}
		if f.document.title != "My Book" {
			t.Errorf("title = %q", f.document.title)
		}
		if len(f.passthrough) != 0 {
			t.Errorf("passthrough = %v, want none", f.passthrough)
		}
	})

	t.Run("unknown long flags pass through", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, []string{"--toc", "--number-sections", "--toc-depth=2"})

		want := []string{"--number-sections", "--toc-depth=2"}
		if diff := cmp.Diff(want, f.passthrough); diff != "" {
			t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
		}
		if !f.document.toc {
			t.Error("own flag lost during retries")
		}
	})

	t.Run("unknown shorthand flags pass through", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, []string{"-s", "--toc"})

		want := []string{"-s"}
		if diff := cmp.Diff(want, f.passthrough); diff != "" {
			t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown flag keeps its separate value token", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, []string{"-V", "fontsize=12pt", "docs"})

		if f.rootDir != "docs" {
			t.Errorf("rootDir = %q, want %q", f.rootDir, "docs")
		}
		want := []string{"-V", "fontsize=12pt"}
		if diff := cmp.Diff(want, f.passthrough); diff != "" {
			t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("joined unknown flag leaves the next token alone", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, []string{"--toc-depth=2", "docs"})

		if f.rootDir != "docs" {
			t.Errorf("rootDir = %q, want %q", f.rootDir, "docs")
		}
		want := []string{"--toc-depth=2"}
		if diff := cmp.Diff(want, f.passthrough); diff != "" {
			t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("extra positionals pass through after root dir", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, []string{"notes", "extra1", "extra2"})

		if f.rootDir != "notes" {
			t.Errorf("rootDir = %q", f.rootDir)
		}
		want := []string{"extra1", "extra2"}
		if diff := cmp.Diff(want, f.passthrough); diff != "" {
			t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no args parses to defaults", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, nil)
		if f.rootDir != "" || len(f.passthrough) != 0 {
			t.Errorf("rootDir = %q, passthrough = %v", f.rootDir, f.passthrough)
		}
		if f.presentation.chromiumPath != config.DefaultChromiumPath {
			t.Errorf("chromiumPath default = %q", f.presentation.chromiumPath)
		}
	})
}

func TestToConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty strings stay absent", func(t *testing.T) {
		t.Parallel()
		cfg := mustParse(t, nil).toConfig()

		if cfg.Output != nil || cfg.Title != nil || cfg.Author != nil || cfg.RootDir != nil {
			t.Error("unset string flags produced present values")
		}
		// Bool flags always carry a value, which the file may override when
		// it equals the schema default.
		if cfg.TitlePage == nil || cfg.TOC == nil || cfg.Verbose == nil {
			t.Error("bool flags should always be present")
		}
		if got := config.PathValue(cfg.Presentation.ChromiumPath); got != config.DefaultChromiumPath {
			t.Errorf("ChromiumPath = %q, want schema default", got)
		}
	})

	t.Run("set values carry over", func(t *testing.T) {
		t.Parallel()
		cfg := mustParse(t, []string{
			"notes",
			"-o", "book.pdf",
			"--author", "Jane",
			"--presentation",
			"--footer-text", "ACME",
			"--chromium-path", "/opt/chromium",
		}).toConfig()

		if got := config.PathValue(cfg.RootDir); got != "notes" {
			t.Errorf("RootDir = %q", got)
		}
		if got := config.StringValue(cfg.Output); got != "book.pdf" {
			t.Errorf("Output = %q", got)
		}
		if got := config.StringValue(cfg.Author); got != "Jane" {
			t.Errorf("Author = %q", got)
		}
		if !config.BoolValue(cfg.Presentation.Enabled) {
			t.Error("Presentation.Enabled not set")
		}
		if got := config.StringValue(cfg.Presentation.FooterText); got != "ACME" {
			t.Errorf("FooterText = %q", got)
		}
		if got := config.PathValue(cfg.Presentation.ChromiumPath); got != "/opt/chromium" {
			t.Errorf("ChromiumPath = %q", got)
		}
	})

	t.Run("passthrough lands in pandoc args normalized", func(t *testing.T) {
		t.Parallel()
		cfg := mustParse(t, []string{
			"--pandoc-args", "--listings -V fontsize=12pt",
			"--number-sections",
		}).toConfig()

		want := []string{"--listings", "-V", "fontsize=12pt", "--number-sections"}
		if diff := cmp.Diff(want, cfg.PandocArgs); diff != "" {
			t.Errorf("PandocArgs mismatch (-want +got):\n%s", diff)
		}
	})
}
