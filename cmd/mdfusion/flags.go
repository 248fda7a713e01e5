package main

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdfusion/internal/config"
)

// commonFlags holds flags shared by every run.
type commonFlags struct {
	configPath string
	verbose    bool
}

// documentFlags holds document-level flags.
type documentFlags struct {
	output         string
	titlePage      bool
	title          string
	author         string
	headerTex      string
	mergedDir      string
	removeAltTexts []string
	toc            bool
	pandocArgs     []string
}

// presentationFlags holds slide-deck flags.
type presentationFlags struct {
	enabled         bool
	footerText      string
	animateAllLines bool
	chromiumPath    string
}

// cliFlags holds all flags plus the tokens pflag did not recognize, which are
// passed through to pandoc.
type cliFlags struct {
	common       commonFlags
	document     documentFlags
	presentation presentationFlags
	rootDir      string   // first positional argument
	passthrough  []string // unknown flags + extra positionals, for pandoc
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.configPath, "config-path", "c", "", "path to the TOML config file")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pandoc output")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (default <root_dir>.pdf)")
	fs.BoolVar(&f.titlePage, "title-page", false, "include a title page")
	fs.StringVarP(&f.title, "title", "t", "", "title for the title page (default: directory name)")
	fs.StringVarP(&f.author, "author", "a", "", "author for the title page (default: OS user)")
	fs.StringVar(&f.headerTex, "header-tex", "", "LaTeX header appended to the built-in preamble")
	fs.StringVar(&f.mergedDir, "merged-dir", "", "keep the merged markdown in this directory")
	fs.StringSliceVar(&f.removeAltTexts, "remove-alt-texts", []string{"alt text"}, "image alt texts stripped during the merge")
	fs.BoolVar(&f.toc, "toc", false, "include a table of contents")
	fs.StringArrayVar(&f.pandocArgs, "pandoc-args", nil, "extra pandoc arguments (may repeat; entries are split on spaces)")
}

// addPresentationFlags adds slide-deck flags to a FlagSet.
func addPresentationFlags(fs *flag.FlagSet, f *presentationFlags) {
	fs.BoolVarP(&f.enabled, "presentation", "p", false, "render a reveal.js slide deck instead of a PDF")
	fs.StringVar(&f.footerText, "footer-text", "", "footer shown on every slide")
	fs.BoolVar(&f.animateAllLines, "animate-all-lines", false, "reveal each line as a fragment")
	fs.StringVar(&f.chromiumPath, "chromium-path", config.DefaultChromiumPath, "chromium binary for the deck-to-PDF render")
}

// newFlagSet builds the full flag set bound to f. Parse failures stay silent
// here: unknown flags are expected during the passthrough retries, and the
// caller decides what to report.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("mdfusion", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addPresentationFlags(fs, &f.presentation)
	return fs
}

// printUsage writes the full help text.
func printUsage(w io.Writer) {
	fs := newFlagSet(&cliFlags{})
	fmt.Fprintf(w, "mdfusion %s\n\n", Version)
	fmt.Fprintln(w, "Usage: mdfusion [root_dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fuse a markdown tree into a single PDF or reveal.js slide deck.")
	fmt.Fprintln(w, "Unrecognized flags are passed through to pandoc.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}

// Patterns matching pflag's two unknown-flag messages.
var (
	unknownFlagPattern      = regexp.MustCompile(`^unknown flag: (--\S+)`)
	unknownShorthandPattern = regexp.MustCompile(`^unknown shorthand flag: '.' in (-\S+)`)
)

// maxParseRetries bounds the unknown-flag retry loop; one retry per argument
// is always enough since each retry removes one token.
func maxParseRetries(args []string) int { return len(args) + 1 }

// parseKnownFlags parses args, collecting tokens pflag does not recognize
// instead of failing on them. Each unrecognized flag token is removed and the
// remaining args are re-parsed, mirroring how pandoc passthrough works:
// anything this tool does not own belongs to pandoc.
func parseKnownFlags(args []string) (*cliFlags, error) {
	var unknown []string
	remaining := args

	for retry := 0; retry < maxParseRetries(args); retry++ {
		f := &cliFlags{}
		fs := newFlagSet(f)

		err := fs.Parse(remaining)
		if err == nil {
			positionals := fs.Args()
			if len(positionals) > 0 {
				f.rootDir = positionals[0]
				positionals = positionals[1:]
			}
			f.passthrough = append(unknown, positionals...)
			return f, nil
		}

		token := unknownFlagToken(err)
		if token == "" {
			return nil, err
		}
		stripped, removed := removeFlagToken(remaining, token)
		if len(removed) == 0 {
			return nil, err
		}
		unknown = append(unknown, removed...)
		remaining = stripped
	}
	return nil, fmt.Errorf("flag parsing did not converge")
}

// unknownFlagToken extracts the offending token from a pflag unknown-flag
// error, or "" when the failure was something else.
func unknownFlagToken(err error) string {
	msg := err.Error()
	if m := unknownFlagPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	if m := unknownShorthandPattern.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return ""
}

// removeFlagToken strips the first occurrence of token (exact or "token=...")
// from args and returns the removed tokens. A bare flag token also takes the
// following token with it when that looks like the flag's value, keeping
// pairs like "-V fontsize=12pt" adjacent in the passthrough instead of
// leaking the value into the positionals.
func removeFlagToken(args []string, token string) (stripped, removed []string) {
	for i, a := range args {
		joined := len(a) > len(token) && a[:len(token)+1] == token+"="
		if a != token && !joined {
			continue
		}
		end := i + 1
		if !joined && end < len(args) && !strings.HasPrefix(args[end], "-") {
			end++
		}
		out := make([]string, 0, len(args)-(end-i))
		out = append(out, args[:i]...)
		out = append(out, args[end:]...)
		return out, args[i:end:end]
	}
	return args, nil
}

// toConfig converts parsed flags to a config group for the merge. Values
// equal to their schema default are indistinguishable from "not specified"
// and may be overridden by the config file.
func (f *cliFlags) toConfig() *config.Config {
	cfg := &config.Config{
		TitlePage:      boolPtr(f.document.titlePage),
		TOC:            boolPtr(f.document.toc),
		Verbose:        boolPtr(f.common.verbose),
		RemoveAltTexts: cloneOrEmpty(f.document.removeAltTexts),
		Presentation: config.PresentationConfig{
			Enabled:         boolPtr(f.presentation.enabled),
			FooterText:      strPtr(f.presentation.footerText),
			AnimateAllLines: boolPtr(f.presentation.animateAllLines),
			ChromiumPath:    pathPtr(config.Path(f.presentation.chromiumPath)),
		},
	}

	setStr(&cfg.Output, f.document.output)
	setStr(&cfg.Title, f.document.title)
	setStr(&cfg.Author, f.document.author)
	setPath(&cfg.RootDir, f.rootDir)
	setPath(&cfg.ConfigPath, f.common.configPath)
	setPath(&cfg.HeaderTex, f.document.headerTex)
	setPath(&cfg.MergedDir, f.document.mergedDir)

	args := cloneOrEmpty(f.document.pandocArgs)
	args = append(args, f.passthrough...)
	cfg.PandocArgs = args

	cfg.Normalize()
	return cfg
}

// setStr sets an optional string field only for non-empty input, keeping
// absence distinguishable.
func setStr(dst **string, v string) {
	if v != "" {
		*dst = strPtr(v)
	}
}

func setPath(dst **config.Path, v string) {
	if v != "" {
		*dst = pathPtr(config.Path(v))
	}
}

func cloneOrEmpty(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func strPtr(s string) *string            { return &s }
func boolPtr(b bool) *bool               { return &b }
func pathPtr(p config.Path) *config.Path { return &p }
