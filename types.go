package mdfusion

// Input holds all parameters for one run. Zero values mean "use the
// documented default"; the CLI resolves its config layers before building an
// Input, so the library never sees partially-merged state.
type Input struct {
	// RootDir is the directory walked for markdown files. Empty = working
	// directory.
	RootDir string

	// Output is the target file. Empty = <RootDir>/<base>.pdf, or .html in
	// presentation mode.
	Output string

	// Title and Author fill the metadata block. Title defaults to the root
	// directory's name, Author to the current OS user.
	Title  string
	Author string

	// TitlePage forces the metadata block even when Title and Author are
	// both unset.
	TitlePage bool

	// TOC asks pandoc for a table of contents.
	TOC bool

	// Verbose streams pandoc's own output instead of a spinner.
	Verbose bool

	// PandocArgs are extra arguments appended to the pandoc command line.
	PandocArgs []string

	// HeaderTex is a user LaTeX header appended to the built-in preamble.
	// Empty = ./header.tex when that file exists.
	HeaderTex string

	// MergedDir keeps the intermediate merged.md in the given directory
	// instead of a temp dir that is removed afterwards.
	MergedDir string

	// RemoveAltTexts lists image alt texts stripped during the merge.
	RemoveAltTexts []string

	// Presentation switches to reveal.js slide-deck output.
	Presentation *Presentation
}

// Presentation holds slide-deck settings.
type Presentation struct {
	// FooterText is shown on every slide.
	FooterText string

	// AnimateAllLines reveals each paragraph and list item as a fragment.
	AnimateAllLines bool

	// ChromiumPath is the browser binary used to print the deck to PDF.
	// When the file does not exist, rod's managed Chromium is used.
	ChromiumPath string
}
