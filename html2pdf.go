package mdfusion

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdfusion/internal/fileutil"
)

// deckRenderer abstracts deck-to-PDF rendering to enable testing without a
// browser.
type deckRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ deckRenderer = (*rodRenderer)(nil)

// revealReadySelector marks a fully initialized reveal.js deck.
const revealReadySelector = ".reveal.ready"

// stabilizeWindow is how long the page must stay unchanged before printing,
// so web fonts and the print-pdf layout have settled.
const stabilizeWindow = 300 * time.Millisecond

// rodRenderer prints a reveal.js deck to PDF using headless Chrome.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	bin     string // preferred browser binary, optional
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout. bin is used
// when it points at an existing browser binary.
func newRodRenderer(bin string, timeout time.Duration) *rodRenderer {
	return &rodRenderer{bin: bin, timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Prefer the configured binary, then the ROD_BROWSER_BIN override.
	if r.bin != "" && fileutil.FileExists(r.bin) {
		l = l.Bin(r.bin)
	} else if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local deck in headless Chrome with reveal's
// print-pdf mode and renders it to PDF. The deck's own CSS page size wins
// over the default paper format.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath + "?print-pdf"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if _, err := page.Element(revealReadySelector); err != nil {
		return nil, fmt.Errorf("%w: deck never became ready: %v", ErrPageLoad, err)
	}
	if err := page.WaitStable(stabilizeWindow); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PreferCSSPageSize: true,
		PrintBackground:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}
