package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-mdfusion/internal/fileutil"
)

// Sentinel errors for config loading.
var (
	ErrConfigParse  = errors.New("failed to parse config")
	ErrInvalidValue = errors.New("invalid config value")
)

// UnknownSectionError reports config file sections that match no schema
// group. All offending sections are collected before the error is raised.
type UnknownSectionError struct {
	Sections []string // sorted
}

func (e *UnknownSectionError) Error() string {
	return "Unknown config section(s): " + strings.Join(e.Sections, ", ")
}

// UnknownKeyError reports config file keys that their section's group does
// not define. Entries are formatted "[section]: key1, key2" and collected
// across every section before the error is raised.
type UnknownKeyError struct {
	Entries []string // section discovery order, keys sorted within each
}

func (e *UnknownKeyError) Error() string {
	return "Unknown config key(s): " + strings.Join(e.Entries, "; ")
}

// LoadDefaults parses the TOML file at path into root, which must be a fresh
// unset instance. A missing path, or one that does not resolve to a file,
// leaves root untouched so every field stays distinguishably absent.
//
// Unknown sections abort the load with a single UnknownSectionError naming
// them all. Unknown keys are aggregated across sections into one
// UnknownKeyError; a section with unknown keys contributes zero fields.
func LoadDefaults(path Path, root Group) error {
	if path == "" || !fileutil.FileExists(string(path)) {
		return nil
	}

	raw := map[string]map[string]any{}
	if _, err := toml.DecodeFile(string(path), &raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	sections := DiscoverSections(root)
	known := make(map[string]bool, len(sections))
	for _, s := range sections {
		known[s.Name] = true
	}

	var unknown []string
	for name := range raw {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &UnknownSectionError{Sections: unknown}
	}

	var badKeys []string
	for _, s := range sections {
		data := raw[s.Name]
		if len(data) == 0 {
			continue
		}
		fields := fieldMap(s.Group)
		var extra []string
		for k := range data {
			if _, ok := fields[k]; !ok {
				extra = append(extra, k)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			badKeys = append(badKeys, fmt.Sprintf("[%s]: %s", s.Name, strings.Join(extra, ", ")))
			continue
		}
		for k, v := range data {
			if err := assignField(fields[k], v); err != nil {
				return fmt.Errorf("[%s] %s: %w", s.Name, k, err)
			}
		}
	}
	if len(badKeys) > 0 {
		return &UnknownKeyError{Entries: badKeys}
	}

	return nil
}

// assignField stores a raw TOML value into the field described by spec,
// converting to the field's semantic type.
func assignField(spec FieldSpec, v any) error {
	switch spec.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrInvalidValue, v)
		}
		*spec.Str = &s
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrInvalidValue, v)
		}
		*spec.Bool = &b
	case KindPath:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected path string, got %T", ErrInvalidValue, v)
		}
		p := Path(s)
		*spec.Path = &p
	case KindStringList:
		list, err := toStringList(v)
		if err != nil {
			return err
		}
		*spec.List = list
	}
	return nil
}

// toStringList canonicalizes a list-or-delimited-string value into a string
// slice. A bare string is split on whitespace, so the merge engine only ever
// sees the list representation.
func toStringList(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		return append([]string{}, strings.Fields(val)...), nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: expected string array element, got %T", ErrInvalidValue, item)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return append([]string{}, val...), nil
	default:
		return nil, fmt.Errorf("%w: expected string array, got %T", ErrInvalidValue, v)
	}
}
