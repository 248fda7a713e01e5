package mdfusion

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-mdfusion/internal/fileutil"
)

// Tag patterns for the HTML bundler. Attribute values must be double-quoted,
// which holds for pandoc output.
var (
	scriptTagPattern = regexp.MustCompile(`(?i)<script\b[^>]*\bsrc\s*=\s*"([^"]+)"[^>]*>\s*</script>`)
	linkTagPattern   = regexp.MustCompile(`(?i)<link\b[^>]*>`)
	imgTagPattern    = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	srcAttrPattern   = regexp.MustCompile(`(?i)\bsrc\s*=\s*"([^"]+)"`)
	hrefAttrPattern  = regexp.MustCompile(`(?i)\bhref\s*=\s*"([^"]+)"`)
)

// BundleHTML reads the HTML file at inputPath, inlines every local script,
// stylesheet, and image it references, and writes the result to outputPath.
// Remote and data: references are left untouched. A missing local asset
// aborts the bundle so broken decks are caught at build time.
func BundleHTML(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath) // #nosec G304 -- pipeline-generated path
	if err != nil {
		return fmt.Errorf("reading html: %w", err)
	}
	baseDir := filepath.Dir(inputPath)

	htmlContent := string(data)
	for _, inline := range []func(string, string) (string, error){
		inlineScripts,
		inlineStylesheets,
		inlineImages,
	} {
		htmlContent, err = inline(htmlContent, baseDir)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(outputPath, []byte(htmlContent), filePermissions); err != nil {
		return fmt.Errorf("writing bundled html: %w", err)
	}
	return nil
}

// inlineScripts replaces <script src="..."></script> with the script content.
func inlineScripts(htmlContent, baseDir string) (string, error) {
	var firstErr error
	out := scriptTagPattern.ReplaceAllStringFunc(htmlContent, func(tag string) string {
		src := scriptTagPattern.FindStringSubmatch(tag)[1]
		if isRemoteRef(src) {
			return tag
		}
		content, err := readAsset(baseDir, src)
		if err != nil {
			firstErr = err
			return tag
		}
		return "<script>\n" + string(content) + "\n</script>"
	})
	return out, firstErr
}

// inlineStylesheets replaces <link rel="stylesheet" href="..."> with a
// <style> element.
func inlineStylesheets(htmlContent, baseDir string) (string, error) {
	var firstErr error
	out := linkTagPattern.ReplaceAllStringFunc(htmlContent, func(tag string) string {
		if !strings.Contains(strings.ToLower(tag), `rel="stylesheet"`) {
			return tag
		}
		m := hrefAttrPattern.FindStringSubmatch(tag)
		if m == nil || isRemoteRef(m[1]) {
			return tag
		}
		content, err := readAsset(baseDir, m[1])
		if err != nil {
			firstErr = err
			return tag
		}
		return "<style>\n" + string(content) + "\n</style>"
	})
	return out, firstErr
}

// inlineImages rewrites local <img> sources into data URIs, preserving the
// rest of the tag.
func inlineImages(htmlContent, baseDir string) (string, error) {
	var firstErr error
	out := imgTagPattern.ReplaceAllStringFunc(htmlContent, func(tag string) string {
		m := srcAttrPattern.FindStringSubmatch(tag)
		if m == nil || isRemoteRef(m[1]) {
			return tag
		}
		content, err := readAsset(baseDir, m[1])
		if err != nil {
			firstErr = err
			return tag
		}
		uri := "data:" + mimeByExt(m[1]) + ";base64," + base64.StdEncoding.EncodeToString(content)
		return srcAttrPattern.ReplaceAllLiteralString(tag, `src="`+uri+`"`)
	})
	return out, firstErr
}

// isRemoteRef reports whether a reference should be left as-is.
func isRemoteRef(ref string) bool {
	return fileutil.IsURL(ref) ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "//")
}

// readAsset loads a referenced file relative to the HTML's directory.
func readAsset(baseDir, ref string) ([]byte, error) {
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, ref)
	}
	content, err := os.ReadFile(path) // #nosec G304 -- reference from generated html
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBundleAsset, ref, err)
	}
	return content, nil
}

// mimeByExt resolves a content type from the file extension.
func mimeByExt(ref string) string {
	if t := mime.TypeByExtension(filepath.Ext(ref)); t != "" {
		return t
	}
	return "application/octet-stream"
}
