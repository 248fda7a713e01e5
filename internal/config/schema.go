// Package config resolves layered configuration for mdfusion: a typed schema
// of nested option groups, a TOML file, and CLI flags combined into one
// fully-resolved parameter set with defined precedence.
//
// "Absent" is a first-class state: every scalar field is a pointer and every
// list field is a nil-able slice, so the zero value of a group is the unset
// instance and values read from a config file are distinguishable from schema
// defaults. Instead of runtime reflection, each group exposes a static field
// table (Specs) that the generic walkers iterate over.
package config

// Path is a filesystem path carried through configuration.
// Path-kind fields convert raw file values into this type on load.
type Path string

// FieldKind classifies a schema field for the generic walkers.
type FieldKind int

const (
	KindString FieldKind = iota
	KindBool
	KindPath
	KindStringList
	KindGroup
)

// FieldSpec describes one field of a schema group: its canonical config key,
// its kind, and a typed pointer into the owning instance. Exactly one of the
// typed slots is set, matching Kind.
type FieldSpec struct {
	Name  string
	Kind  FieldKind
	Str   **string
	Bool  **bool
	Path  **Path
	List  *[]string
	Group Group
}

// Group is a configuration section backed by a struct. Specs returns the
// field table bound to the instance; its order follows the declaration order
// and is stable across calls, which makes section discovery deterministic.
type Group interface {
	SectionName() string
	Specs() []FieldSpec
}

// Section describes one discovered config section: its canonical name, the
// group instance it resolves to, and the field-name path from the root.
type Section struct {
	Name      string
	Group     Group
	FieldPath []string
}

// DiscoverSections walks the schema tree pre-order and returns one Section
// per group, root first. The root's field path is empty.
func DiscoverSections(root Group) []Section {
	sections := []Section{{Name: root.SectionName(), Group: root}}
	walkGroups(root, nil, &sections)
	return sections
}

func walkGroups(g Group, path []string, out *[]Section) {
	for _, f := range g.Specs() {
		if f.Kind != KindGroup {
			continue
		}
		nested := append(append([]string(nil), path...), f.Name)
		*out = append(*out, Section{Name: f.Group.SectionName(), Group: f.Group, FieldPath: nested})
		walkGroups(f.Group, nested, out)
	}
}

// fieldMap returns the group's own (non-group) fields keyed by config key.
func fieldMap(g Group) map[string]FieldSpec {
	m := make(map[string]FieldSpec)
	for _, f := range g.Specs() {
		if f.Kind == KindGroup {
			continue
		}
		m[f.Name] = f
	}
	return m
}

// copyGroup deep-copies every field value from src into dst. Both must be
// instances of the same schema group.
func copyGroup(dst, src Group) {
	d, s := dst.Specs(), src.Specs()
	for i := range d {
		switch d[i].Kind {
		case KindString:
			*d[i].Str = clonePtr(*s[i].Str)
		case KindBool:
			*d[i].Bool = clonePtr(*s[i].Bool)
		case KindPath:
			*d[i].Path = clonePtr(*s[i].Path)
		case KindStringList:
			*d[i].List = cloneList(*s[i].List)
		case KindGroup:
			copyGroup(d[i].Group, s[i].Group)
		}
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneList(l []string) []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l...)
}
