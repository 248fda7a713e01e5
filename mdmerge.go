package mdfusion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/alnah/go-mdfusion/internal/fileutil"
)

// File permission for generated documents.
const filePermissions = 0o644 // rw-r--r--

// imagePattern matches markdown image links: ![alt](target).
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// MergeMarkdown concatenates files into outPath with blank-line separators.
// Relative image links are rewritten to absolute paths against each file's
// own directory, so the merged document renders from anywhere. Alt texts
// listed in removeAlt are stripped. The metadata block, when non-empty, is
// written first.
func MergeMarkdown(files []string, outPath, metadata string, removeAlt []string) error {
	out, err := os.Create(outPath) // #nosec G304 -- caller-controlled output path
	if err != nil {
		return fmt.Errorf("creating merged file: %w", err)
	}

	write := func(s string) error {
		if _, werr := out.WriteString(s); werr != nil {
			return fmt.Errorf("writing merged file: %w", werr)
		}
		return nil
	}

	if metadata != "" {
		if err := write(metadata); err != nil {
			_ = out.Close()
			return err
		}
	}

	for _, file := range files {
		content, err := os.ReadFile(file) // #nosec G304 -- discovered path
		if err != nil {
			_ = out.Close()
			return fmt.Errorf("reading %s: %w", file, err)
		}
		text := RewriteImageLinks(string(content), filepath.Dir(file), removeAlt)
		if err := write(text + "\n\n"); err != nil {
			_ = out.Close()
			return err
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing merged file: %w", err)
	}
	return nil
}

// RewriteImageLinks rewrites markdown image links in text: alt texts listed
// in removeAlt become empty, and non-URL targets are resolved to absolute
// paths against baseDir.
func RewriteImageLinks(text, baseDir string, removeAlt []string) string {
	return imagePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := imagePattern.FindStringSubmatch(m)
		alt, link := sub[1], sub[2]

		if slices.Contains(removeAlt, alt) {
			alt = ""
		}
		if !fileutil.IsURL(link) {
			if abs, err := filepath.Abs(filepath.Join(baseDir, link)); err == nil {
				link = abs
			}
		}
		return fmt.Sprintf("![%s](%s)", alt, link)
	})
}
