package policy

import "sort"

// Presets is a table of named policies. A table is built once at startup
// and only read afterwards; Lookup hands out copies.
type Presets map[string]Policy

// Builtin returns the presets shipped with htmlwash.
func Builtin() Presets {
	return Presets{
		"pub-w": {
			ClassNames:        []string{"gen-field", "pswp", "underlay"},
			PartialClassNames: []string{"hidden"},
			Attributes:        map[string]string{"type": "hidden"},
			ClassPrefixes:     []string{"dc-", "du-"},
			IDs:               []string{"tt4", "tt35", "questionContainer"},
		},
	}
}

// Lookup returns a copy of the named preset.
func (ps Presets) Lookup(name string) (Policy, bool) {
	p, ok := ps[name]
	if !ok {
		return Policy{}, false
	}
	return p.Clone(), true
}

// Merge returns a new table holding ps overlaid with other. Presets in
// other replace same-named presets in ps.
func (ps Presets) Merge(other Presets) Presets {
	out := make(Presets, len(ps)+len(other))
	for name, p := range ps {
		out[name] = p.Clone()
	}
	for name, p := range other {
		out[name] = p.Clone()
	}
	return out
}

// Names returns the preset keys in sorted order.
func (ps Presets) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
