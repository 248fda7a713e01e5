// Package mdfusion merges a tree of Markdown files into a single document
// and drives Pandoc to render it as a PDF or a reveal.js slide deck.
//
// # Quick Start
//
// Create a service, run it, and close when done:
//
//	svc := mdfusion.New()
//	defer svc.Close()
//
//	out, err := svc.Run(ctx, mdfusion.Input{
//	    RootDir: "./notes",
//	    TOC:     true,
//	})
//
// The service walks RootDir for *.md files in natural order, concatenates
// them (rewriting relative image links to absolute paths), and invokes
// Pandoc with the XeLaTeX engine to produce <root>/<root>.pdf.
//
// # Presentations
//
// With Input.Presentation set, the merged document is rendered as a
// reveal.js HTML deck instead. The deck is post-processed into a single
// self-contained file (scripts, styles, and local images inlined) and then
// printed to PDF with headless Chrome:
//
//	out, err := svc.Run(ctx, mdfusion.Input{
//	    RootDir: "./talk",
//	    Presentation: &mdfusion.Presentation{
//	        FooterText: "FOSDEM 2026",
//	    },
//	})
//
// # Configuration
//
// The mdfusion CLI resolves its parameters from three layers: command-line
// flags, an mdfusion.toml file, and schema defaults. See cmd/mdfusion and
// internal/config for the resolution rules.
//
// # External Requirements
//
// Pandoc and XeLaTeX must be on PATH. Presentation PDF export requires
// Chrome/Chromium; go-rod downloads a managed Chromium when the configured
// binary does not exist. Set ROD_NO_SANDBOX=1 in containers and CI.
package mdfusion
