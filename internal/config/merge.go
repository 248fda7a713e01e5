package config

import "slices"

// Merge resolves the final parameter set from CLI flags, an optional TOML
// file, and schema defaults. Precedence: explicit non-default CLI input wins,
// file values fill gaps, schema defaults are the lowest tier. List fields use
// a file-first union with no duplicates.
//
// A CLI value equal to the schema default is indistinguishable from "not
// specified" and is overwritten by a file value. That quirk is part of the
// contract; see the scalar precedence tests.
//
// The returned Config is a fresh instance; cli is not modified.
func Merge(cli *Config, configPath Path) (*Config, error) {
	fileCfg := &Config{}
	if err := LoadDefaults(configPath, fileCfg); err != nil {
		return nil, err
	}

	merged := &Config{}
	copyGroup(merged, cli)
	// Canonicalize before merging so the list-union membership checks compare
	// single tokens even when the caller passed multi-token entries.
	merged.Normalize()
	mergeGroup(merged, fileCfg, Default())
	merged.Normalize()
	return merged, nil
}

// mergeGroup folds file values into dst, field by field, recursing through
// nested groups. All three groups must share one schema, so their field
// tables line up index for index.
func mergeGroup(dst, file, def Group) {
	d, f, base := dst.Specs(), file.Specs(), def.Specs()
	for i := range d {
		switch d[i].Kind {
		case KindGroup:
			mergeGroup(d[i].Group, f[i].Group, base[i].Group)
		case KindStringList:
			mergeList(d[i].List, *f[i].List, *base[i].List)
		case KindString:
			mergeString(d[i].Str, *f[i].Str, *base[i].Str)
		case KindPath:
			mergePath(d[i].Path, *f[i].Path, *base[i].Path)
		case KindBool:
			mergeBool(d[i].Bool, *f[i].Bool, *base[i].Bool)
		}
	}
}

// mergeList applies the list-union rule: when the current value is absent,
// empty, or equal to the default, the file list replaces it outright;
// otherwise file items come first, then current items not already in the
// file's list.
func mergeList(dst *[]string, file, def []string) {
	if file == nil {
		return
	}
	cur := *dst
	if len(cur) == 0 || slices.Equal(cur, def) {
		*dst = cloneList(file)
		return
	}
	merged := cloneList(file)
	for _, item := range cur {
		if !slices.Contains(file, item) {
			merged = append(merged, item)
		}
	}
	*dst = merged
}

func mergeString(dst **string, file, def *string) {
	if file == nil {
		return
	}
	cur := *dst
	if cur == nil || *cur == "" || (def != nil && *cur == *def) {
		*dst = clonePtr(file)
	}
}

func mergePath(dst **Path, file, def *Path) {
	if file == nil {
		return
	}
	cur := *dst
	if cur == nil || *cur == "" || (def != nil && *cur == *def) {
		*dst = clonePtr(file)
	}
}

func mergeBool(dst **bool, file, def *bool) {
	if file == nil {
		return
	}
	cur := *dst
	if cur == nil || (def != nil && *cur == *def) {
		*dst = clonePtr(file)
	}
}
