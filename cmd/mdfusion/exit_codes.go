package main

import (
	"errors"
	"os"

	mdfusion "github.com/alnah/go-mdfusion"
	"github.com/alnah/go-mdfusion/internal/config"
)

// Exit codes for the mdfusion CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Successful run
	ExitGeneral     = 1 // General/unexpected error, including pandoc failures
	ExitUsage       = 2 // Invalid flags, config, or validation
	ExitIO          = 3 // File not found, permission denied, no input files
	ExitBrowser     = 4 // Browser/Chrome errors
	ExitRequirement = 5 // Missing external tool (pandoc, xelatex)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is/As to check wrapped errors, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdfusion.ErrBrowserConnect) ||
		errors.Is(err, mdfusion.ErrPageCreate) ||
		errors.Is(err, mdfusion.ErrPageLoad) ||
		errors.Is(err, mdfusion.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Missing external tools (exit 5)
	if errors.Is(err, ErrMissingRequirement) {
		return ExitRequirement
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdfusion.ErrNoMarkdownFiles) ||
		errors.Is(err, mdfusion.ErrBundleAsset) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	var sectionErr *config.UnknownSectionError
	var keyErr *config.UnknownKeyError
	if errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.As(err, &sectionErr) ||
		errors.As(err, &keyErr) ||
		errors.Is(err, ErrPresentationOutput) {
		return ExitUsage
	}

	return ExitGeneral
}
