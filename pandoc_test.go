package mdfusion

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeRunner records the command and returns scripted output.
type fakeRunner struct {
	name   string
	args   []string
	stdout string
	stderr string
	err    error
}

func (r *fakeRunner) Run(name string, args ...string) (string, string, error) {
	r.name = name
	r.args = args
	return r.stdout, r.stderr, r.err
}

func TestBuildPandocArgs(t *testing.T) {
	t.Parallel()

	t.Run("pdf document", func(t *testing.T) {
		t.Parallel()
		args := buildPandocArgs(pandocOptions{
			MergedPath:   "/tmp/merged.md",
			OutputPath:   "/out/book.pdf",
			ResourcePath: "/docs/a:/docs/b",
			HeaderFile:   "/tmp/header.tex",
			TOC:          true,
			ExtraArgs:    []string{"--number-sections"},
		})

		want := []string{
			"-s", "/tmp/merged.md",
			"-o", "/out/book.pdf",
			"--pdf-engine=xelatex",
			"--resource-path=/docs/a:/docs/b",
			"--include-in-header=/tmp/header.tex",
			"--toc",
			"--number-sections",
		}
		if diff := cmp.Diff(want, args); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("slide deck adds reveal flags last", func(t *testing.T) {
		t.Parallel()
		args := buildPandocArgs(pandocOptions{
			MergedPath:   "/tmp/merged.md",
			OutputPath:   "/out/deck.html",
			ResourcePath: "/docs",
			Reveal:       &revealIncludes{Header: "/tmp/h.html", Footer: "/tmp/f.html"},
		})

		if !slices.Contains(args, "revealjs") {
			t.Errorf("args missing revealjs target: %v", args)
		}
		idx := slices.Index(args, "-t")
		if idx < 0 || args[idx+1] != "revealjs" {
			t.Errorf("-t revealjs not paired: %v", args)
		}
		if !slices.Contains(args, "-H") || !slices.Contains(args, "-A") {
			t.Errorf("include flags missing: %v", args)
		}
		for _, a := range args {
			if strings.HasPrefix(a, "--include-in-header=") {
				t.Errorf("latex header leaked into deck args: %v", args)
			}
		}
	})
}

func TestPandocConverterConvert(t *testing.T) {
	t.Parallel()

	t.Run("success returns stdout", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{stdout: "pandoc output"}
		c := &PandocConverter{Runner: runner}

		out, err := c.Convert(pandocOptions{MergedPath: "m.md", OutputPath: "o.pdf"})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if out != "pandoc output" {
			t.Errorf("stdout = %q", out)
		}
		if runner.name != "pandoc" {
			t.Errorf("command = %q, want pandoc", runner.name)
		}
	})

	t.Run("failure wraps ErrPandoc with stderr", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{stderr: "xelatex not found\n", err: errors.New("exit status 47")}
		c := &PandocConverter{Runner: runner}

		_, err := c.Convert(pandocOptions{})
		if !errors.Is(err, ErrPandoc) {
			t.Fatalf("error = %v, want ErrPandoc", err)
		}
		if !strings.Contains(err.Error(), "xelatex not found") {
			t.Errorf("error %q does not surface stderr", err)
		}
	})

	t.Run("unknown option gets a hint", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name   string
			stderr string
			flag   string
		}{
			{"gnu style", "pandoc: unrecognized option `--bogus'\n", "--bogus"},
			{"pandoc style", "Unknown option --bogus.\n", "--bogus."},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				runner := &fakeRunner{stderr: tt.stderr, err: errors.New("exit status 2")}
				c := &PandocConverter{Runner: runner}

				_, err := c.Convert(pandocOptions{})
				if !errors.Is(err, ErrPandoc) {
					t.Fatalf("error = %v, want ErrPandoc", err)
				}
				if !strings.Contains(err.Error(), "pandoc --help") {
					t.Errorf("error %q missing the help hint", err)
				}
				if !strings.Contains(err.Error(), tt.flag) {
					t.Errorf("error %q does not name the flag", err)
				}
			})
		}
	})
}

func TestUnrecognizedPandocOption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stderr string
		want   string
	}{
		{"unrecognized option `--columns=80'", "--columns=80"},
		{"Unknown option --wrap", "--wrap"},
		{"some other failure", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := unrecognizedPandocOption(tt.stderr); got != tt.want {
			t.Errorf("unrecognizedPandocOption(%q) = %q, want %q", tt.stderr, got, tt.want)
		}
	}
}
