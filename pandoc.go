package mdfusion

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/alnah/go-mdfusion/internal/assets"
)

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	return stdout.String(), string(stderrContent), err
}

// pandocOptions holds everything needed to assemble the pandoc command line.
type pandocOptions struct {
	MergedPath   string
	OutputPath   string
	ResourcePath string
	HeaderFile   string // --include-in-header, PDF output only
	TOC          bool
	ExtraArgs    []string
	Reveal       *revealIncludes // nil unless rendering a slide deck
}

// revealIncludes are the -H/-A files injected into reveal.js output.
type revealIncludes struct {
	Header string
	Footer string
}

// buildPandocArgs assembles the argument list for one pandoc invocation.
func buildPandocArgs(opts pandocOptions) []string {
	args := []string{
		"-s", opts.MergedPath,
		"-o", opts.OutputPath,
		"--pdf-engine=xelatex",
		"--resource-path=" + opts.ResourcePath,
	}
	if opts.HeaderFile != "" {
		args = append(args, "--include-in-header="+opts.HeaderFile)
	}
	if opts.TOC {
		args = append(args, "--toc")
	}
	args = append(args, opts.ExtraArgs...)
	if opts.Reveal != nil {
		args = append(args,
			"-t", "revealjs",
			"-V", "revealjs-url="+assets.RevealURL,
			"-H", opts.Reveal.Header,
			"-A", opts.Reveal.Footer,
		)
	}
	return args
}

// PandocConverter renders the merged document by invoking the Pandoc CLI.
type PandocConverter struct {
	Runner CommandRunner
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter() *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}}
}

// Convert runs pandoc with the assembled arguments. Pandoc's stdout is
// returned so callers can surface it in verbose mode.
func (c *PandocConverter) Convert(opts pandocOptions) (string, error) {
	stdout, stderr, err := c.Runner.Run("pandoc", buildPandocArgs(opts)...)
	if err != nil {
		if bad := unrecognizedPandocOption(stderr); bad != "" {
			return stdout, fmt.Errorf("%w: argument %q not recognized, try: pandoc --help", ErrPandoc, bad)
		}
		return stdout, fmt.Errorf("%w: %s: %v", ErrPandoc, strings.TrimSpace(stderr), err)
	}
	return stdout, nil
}

// Patterns matching pandoc's two unknown-option messages.
var (
	unrecognizedOptionPattern = regexp.MustCompile("unrecognized option `([^']+)'")
	unknownOptionPattern      = regexp.MustCompile(`Unknown option (--\S+)`)
)

// unrecognizedPandocOption extracts the offending flag from pandoc's stderr,
// or "" when the failure was something else.
func unrecognizedPandocOption(stderr string) string {
	if m := unrecognizedOptionPattern.FindStringSubmatch(stderr); m != nil {
		return m[1]
	}
	if m := unknownOptionPattern.FindStringSubmatch(stderr); m != nil {
		return m[1]
	}
	return ""
}
