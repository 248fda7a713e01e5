package mdfusion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// makeTree writes empty files (relative paths) under a temp root.
func makeTree(t *testing.T, paths []string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("# "+p+"\n"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func relAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestFindMarkdownFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "digit runs compare numerically",
			paths: []string{"ch10.md", "ch2.md", "ch1.md"},
			want:  []string{"ch1.md", "ch2.md", "ch10.md"},
		},
		{
			name:  "nested dirs sort by relative path",
			paths: []string{"02-body/ch1.md", "01-intro/ch1.md", "01-intro/ch2.md"},
			want:  []string{"01-intro/ch1.md", "01-intro/ch2.md", "02-body/ch1.md"},
		},
		{
			name:  "case is ignored for text runs",
			paths: []string{"Beta.md", "alpha.md"},
			want:  []string{"alpha.md", "Beta.md"},
		},
		{
			name:  "non-markdown files are skipped",
			paths: []string{"a.md", "image.png", "notes.txt"},
			want:  []string{"a.md"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := makeTree(t, tt.paths)
			files, err := FindMarkdownFiles(root)
			if err != nil {
				t.Fatalf("FindMarkdownFiles() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, relAll(t, root, files)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("empty tree yields no files", func(t *testing.T) {
		t.Parallel()
		files, err := FindMarkdownFiles(t.TempDir())
		if err != nil {
			t.Fatalf("FindMarkdownFiles() error = %v", err)
		}
		if len(files) != 0 {
			t.Errorf("files = %v, want none", files)
		}
	})
}

func TestNaturalLess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"ch2", "ch10", true},
		{"ch10", "ch2", false},
		{"ch2", "ch2", false},
		{"a", "ab", true},
		{"2-intro", "10-body", true},
		{"v1.2", "v1.10", true},
	}

	for _, tt := range tests {
		if got := naturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
