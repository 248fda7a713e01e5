package config

import "strings"

// Config is the root parameter set for a run, mapped to the [mdfusion]
// section. The zero value is the unset instance: every scalar is a nil
// pointer and every list is nil.
type Config struct {
	RootDir        *Path     // root directory for markdown discovery
	Output         *string   // output file (defaults to <root_dir>.pdf or .html)
	TitlePage      *bool     // include a title page
	Title          *string   // title for the title page (defaults to dirname)
	Author         *string   // author for the title page (defaults to OS user)
	PandocArgs     []string  // extra pandoc arguments
	ConfigPath     *Path     // path to the TOML config file
	HeaderTex      *Path     // user LaTeX header appended to the built-in one
	MergedDir      *Path     // directory for the merged markdown (temp dir by default)
	RemoveAltTexts []string  // image alt texts stripped during the merge
	TOC            *bool     // include a table of contents
	Verbose        *bool     // verbose pandoc output

	Presentation PresentationConfig
}

// SectionName returns the canonical config file section for the root group.
func (c *Config) SectionName() string { return "mdfusion" }

// Specs returns the static field table for the root group.
func (c *Config) Specs() []FieldSpec {
	return []FieldSpec{
		{Name: "root_dir", Kind: KindPath, Path: &c.RootDir},
		{Name: "output", Kind: KindString, Str: &c.Output},
		{Name: "title_page", Kind: KindBool, Bool: &c.TitlePage},
		{Name: "title", Kind: KindString, Str: &c.Title},
		{Name: "author", Kind: KindString, Str: &c.Author},
		{Name: "pandoc_args", Kind: KindStringList, List: &c.PandocArgs},
		{Name: "config_path", Kind: KindPath, Path: &c.ConfigPath},
		{Name: "header_tex", Kind: KindPath, Path: &c.HeaderTex},
		{Name: "merged_dir", Kind: KindPath, Path: &c.MergedDir},
		{Name: "remove_alt_texts", Kind: KindStringList, List: &c.RemoveAltTexts},
		{Name: "toc", Kind: KindBool, Bool: &c.TOC},
		{Name: "verbose", Kind: KindBool, Bool: &c.Verbose},
		{Name: "presentation", Kind: KindGroup, Group: &c.Presentation},
	}
}

// PresentationConfig controls reveal.js slide-deck output, mapped to the
// [presentation] section.
type PresentationConfig struct {
	Enabled         *bool   // render an HTML slide deck instead of a plain PDF
	FooterText      *string // footer shown on every slide
	AnimateAllLines *bool   // reveal each line as a fragment
	ChromiumPath    *Path   // chromium binary for the deck-to-PDF render
}

// SectionName returns the canonical config file section for this group.
func (p *PresentationConfig) SectionName() string { return "presentation" }

// Specs returns the static field table for the presentation group.
func (p *PresentationConfig) Specs() []FieldSpec {
	return []FieldSpec{
		{Name: "presentation", Kind: KindBool, Bool: &p.Enabled},
		{Name: "footer_text", Kind: KindString, Str: &p.FooterText},
		{Name: "animate_all_lines", Kind: KindBool, Bool: &p.AnimateAllLines},
		{Name: "chromium_path", Kind: KindPath, Path: &p.ChromiumPath},
	}
}

// DefaultChromiumPath is used for the deck-to-PDF render when no explicit
// binary is configured. Rod falls back to its managed browser when the file
// does not exist.
const DefaultChromiumPath = "/usr/bin/chromium"

// Default returns a Config with every field at its schema default. Fields
// with no meaningful default stay absent.
func Default() *Config {
	return &Config{
		TitlePage:      boolPtr(false),
		PandocArgs:     []string{},
		RemoveAltTexts: []string{"alt text"},
		TOC:            boolPtr(false),
		Verbose:        boolPtr(false),
		Presentation: PresentationConfig{
			Enabled:         boolPtr(false),
			FooterText:      strPtr(""),
			AnimateAllLines: boolPtr(false),
			ChromiumPath:    pathPtr(DefaultChromiumPath),
		},
	}
}

// Normalize canonicalizes ambiguous-shaped fields so the merge engine only
// ever sees one representation: pandoc argument entries that contain
// whitespace are split into individual tokens.
func (c *Config) Normalize() {
	c.PandocArgs = splitTokens(c.PandocArgs)
}

// splitTokens flattens whitespace-delimited entries into single tokens.
// A nil slice stays nil so absence survives normalization.
func splitTokens(entries []string) []string {
	if entries == nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.Fields(e)...)
	}
	return out
}

// StringValue unwraps an optional string field, returning "" when absent.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// BoolValue unwraps an optional bool field, returning false when absent.
func BoolValue(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

// PathValue unwraps an optional path field, returning "" when absent.
func PathValue(p *Path) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func pathPtr(p Path) *Path    { return &p }
