package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscoverSections(t *testing.T) {
	t.Parallel()

	t.Run("root first then nested groups pre-order", func(t *testing.T) {
		t.Parallel()
		sections := DiscoverSections(&Config{})

		var names []string
		for _, s := range sections {
			names = append(names, s.Name)
		}
		want := []string{"mdfusion", "presentation"}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("section names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("field paths locate nested groups", func(t *testing.T) {
		t.Parallel()
		sections := DiscoverSections(&Config{})

		if got := sections[0].FieldPath; len(got) != 0 {
			t.Errorf("root FieldPath = %v, want empty", got)
		}
		want := []string{"presentation"}
		if diff := cmp.Diff(want, sections[1].FieldPath); diff != "" {
			t.Errorf("nested FieldPath mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("repeated discovery is identical", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		first := DiscoverSections(cfg)
		second := DiscoverSections(cfg)

		if len(first) != len(second) {
			t.Fatalf("section count changed: %d then %d", len(first), len(second))
		}
		for i := range first {
			if first[i].Name != second[i].Name {
				t.Errorf("section %d: %q then %q", i, first[i].Name, second[i].Name)
			}
			if diff := cmp.Diff(first[i].FieldPath, second[i].FieldPath); diff != "" {
				t.Errorf("section %d field path changed:\n%s", i, diff)
			}
		}
	})
}

func TestZeroValueIsUnset(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	for _, s := range DiscoverSections(cfg) {
		for _, f := range s.Group.Specs() {
			switch f.Kind {
			case KindString:
				if *f.Str != nil {
					t.Errorf("[%s] %s: zero value not absent", s.Name, f.Name)
				}
			case KindBool:
				if *f.Bool != nil {
					t.Errorf("[%s] %s: zero value not absent", s.Name, f.Name)
				}
			case KindPath:
				if *f.Path != nil {
					t.Errorf("[%s] %s: zero value not absent", s.Name, f.Name)
				}
			case KindStringList:
				if *f.List != nil {
					t.Errorf("[%s] %s: zero value not absent", s.Name, f.Name)
				}
			}
		}
	}
}

func TestAbsentDistinguishableFromZero(t *testing.T) {
	t.Parallel()

	// A false bool, an empty string, and an empty list are all present
	// values, not absence.
	cfg := &Config{
		TitlePage:  boolPtr(false),
		Title:      strPtr(""),
		PandocArgs: []string{},
	}

	if cfg.TitlePage == nil || *cfg.TitlePage != false {
		t.Error("explicit false lost")
	}
	if cfg.Title == nil || *cfg.Title != "" {
		t.Error("explicit empty string lost")
	}
	if cfg.PandocArgs == nil {
		t.Error("explicit empty list collapsed to absent")
	}
	if cfg.Author != nil {
		t.Error("untouched field not absent")
	}
}

func TestCopyGroup(t *testing.T) {
	t.Parallel()

	src := &Config{
		Output:         strPtr("book.pdf"),
		TitlePage:      boolPtr(true),
		RootDir:        pathPtr("notes"),
		PandocArgs:     []string{"--toc-depth=2"},
		RemoveAltTexts: []string{"alt text"},
		Presentation: PresentationConfig{
			Enabled:    boolPtr(true),
			FooterText: strPtr("ACME"),
		},
	}

	dst := &Config{}
	copyGroup(dst, src)

	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("copy mismatch (-src +dst):\n%s", diff)
	}

	// Mutating the copy must not reach the source.
	*dst.Output = "other.pdf"
	dst.PandocArgs[0] = "--changed"
	*dst.Presentation.FooterText = "changed"

	if *src.Output != "book.pdf" {
		t.Error("scalar copy aliases source")
	}
	if src.PandocArgs[0] != "--toc-depth=2" {
		t.Error("list copy aliases source")
	}
	if *src.Presentation.FooterText != "ACME" {
		t.Error("nested group copy aliases source")
	}
}

func TestCopyGroupPreservesAbsence(t *testing.T) {
	t.Parallel()

	dst := &Config{Output: strPtr("stale.pdf")}
	copyGroup(dst, &Config{})

	if dst.Output != nil {
		t.Error("absent source field did not clear destination")
	}
	if dst.PandocArgs != nil {
		t.Error("nil list became non-nil")
	}
}
