package mdfusion

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/alnah/go-mdfusion/internal/assets"
	"github.com/alnah/go-mdfusion/internal/fileutil"
)

// documentConverter abstracts the pandoc invocation for testing.
type documentConverter interface {
	Convert(opts pandocOptions) (string, error)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout bounds the deck-to-PDF render.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the deck-to-PDF render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdfusion: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithRunner replaces the command runner used for pandoc.
func WithRunner(r CommandRunner) Option {
	return func(s *Service) {
		s.converter = &PandocConverter{Runner: r}
	}
}

// Service orchestrates the fuse-and-render pipeline: discover markdown files,
// merge them into one document, convert with pandoc, and post-process slide
// decks.
type Service struct {
	cfg       serviceConfig
	converter documentConverter
	renderer  deckRenderer
	userName  func() (string, error)
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:       serviceConfig{timeout: defaultTimeout},
		converter: NewPandocConverter(),
		userName:  currentUserName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// Run executes the full pipeline and returns the path of the written output.
// In presentation mode the returned path is the HTML deck; the PDF export is
// written next to it.
func (s *Service) Run(ctx context.Context, input Input) (string, error) {
	rootDir, err := resolveRootDir(input.RootDir)
	if err != nil {
		return "", err
	}

	files, err := FindMarkdownFiles(rootDir)
	if err != nil {
		return "", fmt.Errorf("discovering markdown files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: under %s", ErrNoMarkdownFiles, rootDir)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	metadata, err := s.buildMetadata(input, rootDir)
	if err != nil {
		return "", err
	}

	workDir, cleanup, err := resolveWorkDir(input.MergedDir)
	if err != nil {
		return "", err
	}
	defer cleanup()

	mergedPath := filepath.Join(workDir, "merged.md")
	if err := MergeMarkdown(files, mergedPath, metadata, input.RemoveAltTexts); err != nil {
		return "", err
	}

	output := resolveOutput(input.Output, rootDir, input.Presentation != nil)

	opts := pandocOptions{
		MergedPath:   mergedPath,
		OutputPath:   output,
		ResourcePath: buildResourcePath(files),
		TOC:          input.TOC,
		ExtraArgs:    input.PandocArgs,
	}

	if input.Presentation != nil {
		header, footer, err := assets.WriteRevealIncludes(workDir)
		if err != nil {
			return "", err
		}
		opts.Reveal = &revealIncludes{Header: header, Footer: footer}
		// The raw deck lands in the work dir; bundling produces the final
		// file at the requested output path.
		opts.OutputPath = filepath.Join(workDir, filepath.Base(output))
	} else {
		headerFile, headerCleanup, err := BuildHeader(resolveHeaderTex(input.HeaderTex))
		if err != nil {
			return "", err
		}
		defer headerCleanup()
		opts.HeaderFile = headerFile
	}

	if err := s.runPandoc(opts, input.Verbose); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if input.Presentation != nil {
		if err := s.finishDeck(ctx, opts.OutputPath, output, workDir, input.Presentation); err != nil {
			return "", err
		}
	}

	return output, nil
}

// runPandoc invokes pandoc, showing a spinner unless verbose mode streams
// pandoc's own output.
func (s *Service) runPandoc(opts pandocOptions, verbose bool) error {
	var sp *spinner.Spinner
	if !verbose {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Suffix = " Running pandoc..."
		sp.Start()
		defer sp.Stop()
	}

	stdout, err := s.converter.Convert(opts)
	if verbose && stdout != "" {
		fmt.Fprint(os.Stderr, stdout)
	}
	return err
}

// finishDeck turns the raw pandoc deck into a self-contained HTML file at
// output and prints it to a PDF next to it.
func (s *Service) finishDeck(ctx context.Context, rawPath, output, workDir string, p *Presentation) error {
	raw, err := os.ReadFile(rawPath) // #nosec G304 -- pipeline-generated path
	if err != nil {
		return fmt.Errorf("reading generated deck: %w", err)
	}
	injected, err := InjectDeckConfig(string(raw), p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(rawPath, []byte(injected), filePermissions); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}

	// deck.js is referenced by the footer include and must sit next to the
	// deck before bundling inlines it.
	if err := assets.CopyPublic(workDir); err != nil {
		return err
	}
	if err := BundleHTML(rawPath, output); err != nil {
		return err
	}

	if s.renderer == nil {
		s.renderer = newRodRenderer(p.ChromiumPath, s.cfg.timeout)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolving deck path: %w", err)
	}
	pdfBytes, err := s.renderer.RenderFromFile(ctx, absOutput)
	if err != nil {
		return err
	}

	pdfPath := strings.TrimSuffix(output, filepath.Ext(output)) + ".pdf"
	if err := os.WriteFile(pdfPath, pdfBytes, filePermissions); err != nil {
		return fmt.Errorf("writing deck PDF: %w", err)
	}
	return nil
}

// buildMetadata renders the front-matter block, or "" when no title page was
// requested. Title falls back to the root directory's name, author to the
// current OS user.
func (s *Service) buildMetadata(input Input, rootDir string) (string, error) {
	if !input.TitlePage && input.Title == "" && input.Author == "" {
		return "", nil
	}

	title := input.Title
	if title == "" {
		title = filepath.Base(rootDir)
	}
	author := input.Author
	if author == "" {
		name, err := s.userName()
		if err == nil {
			author = name
		}
	}
	return BuildMetadata(title, author, time.Now())
}

// currentUserName resolves the OS user for the default author.
func currentUserName() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	if u.Name != "" {
		return u.Name, nil
	}
	return u.Username, nil
}

// resolveRootDir defaults to the working directory and normalizes to an
// absolute path so derived names and links are stable.
func resolveRootDir(rootDir string) (string, error) {
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		rootDir = wd
	}
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("resolving root directory: %w", err)
	}
	return abs, nil
}

// resolveWorkDir returns the directory holding intermediate files. A
// user-provided dir is created and kept; otherwise a temp dir is removed when
// the run ends.
func resolveWorkDir(mergedDir string) (dir string, cleanup func(), err error) {
	if mergedDir != "" {
		if err := os.MkdirAll(mergedDir, 0o750); err != nil {
			return "", nil, fmt.Errorf("creating merged dir: %w", err)
		}
		return mergedDir, func() {}, nil
	}
	dir, err = os.MkdirTemp("", "mdfusion-")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

// resolveOutput defaults the output path to <rootDir>/<base>.pdf, or .html
// for slide decks.
func resolveOutput(output, rootDir string, presentation bool) string {
	if output != "" {
		return output
	}
	ext := ".pdf"
	if presentation {
		ext = ".html"
	}
	return filepath.Join(rootDir, filepath.Base(rootDir)+ext)
}

// resolveHeaderTex falls back to ./header.tex when present.
func resolveHeaderTex(headerTex string) string {
	if headerTex != "" {
		return headerTex
	}
	if fileutil.FileExists("header.tex") {
		return "header.tex"
	}
	return ""
}

// buildResourcePath joins the unique parent directories of the discovered
// files so pandoc can resolve relative resources from any of them.
func buildResourcePath(files []string) string {
	seen := make(map[string]struct{}, len(files))
	var dirs []string
	for _, f := range files {
		dir := filepath.Dir(f)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return strings.Join(dirs, string(os.PathListSeparator))
}
