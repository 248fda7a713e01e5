package mdfusion

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrPandoc          = errors.New("pandoc failed")
	ErrBundleAsset     = errors.New("asset not found while bundling")

	// Browser errors for presentation PDF export.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)
