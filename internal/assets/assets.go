// Package assets embeds the reveal.js include files and the public scripts
// bundled into HTML slide decks.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// RevealURL is the reveal.js distribution passed to pandoc for slide decks.
const RevealURL = "https://cdn.jsdelivr.net/npm/reveal.js@4"

//go:embed reveal public
var embedded embed.FS

// File permissions for extracted assets.
const filePermissions = 0o644 // rw-r--r--

// WriteRevealIncludes extracts the pandoc -H/-A include files into dir and
// returns their paths.
func WriteRevealIncludes(dir string) (header, footer string, err error) {
	header, err = writeEmbedded("reveal/header.html", dir)
	if err != nil {
		return "", "", err
	}
	footer, err = writeEmbedded("reveal/footer.html", dir)
	if err != nil {
		return "", "", err
	}
	return header, footer, nil
}

// CopyPublic extracts every public asset into dir (flat), so the generated
// deck can reference them relative to itself before bundling inlines them.
func CopyPublic(dir string) error {
	entries, err := fs.ReadDir(embedded, "public")
	if err != nil {
		return fmt.Errorf("reading embedded public assets: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := writeEmbedded("public/"+e.Name(), dir); err != nil {
			return err
		}
	}
	return nil
}

// writeEmbedded copies one embedded file into dir, keeping its base name.
func writeEmbedded(name, dir string) (string, error) {
	data, err := embedded.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading embedded asset %s: %w", name, err)
	}
	dst := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(dst, data, filePermissions); err != nil {
		return "", fmt.Errorf("writing asset %s: %w", dst, err)
	}
	return dst, nil
}
