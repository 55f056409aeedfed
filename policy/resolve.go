package policy

// Overrides are explicit per-request removal rules. Empty fields leave the
// preset value in place.
type Overrides struct {
	ClassNames        []string
	PartialClassNames []string
	ClassPrefixes     []string
	Attributes        map[string]string
	IDs               []string
	Selectors         []string
	XPaths            []string
}

// Resolve builds the effective policy for a request.
//
// The named preset is looked up in presets; an unknown or empty name falls
// back to the empty policy. Each non-empty list in o replaces the preset's
// list outright. Attributes are the exception: they are merged key by key
// into a copy of the preset's attribute map.
func Resolve(presets Presets, preset string, o Overrides) Policy {
	var p Policy
	if preset != "" {
		if found, ok := presets.Lookup(preset); ok {
			p = found
		}
	}

	replace(&p.ClassNames, o.ClassNames)
	replace(&p.PartialClassNames, o.PartialClassNames)
	replace(&p.ClassPrefixes, o.ClassPrefixes)
	replace(&p.IDs, o.IDs)
	replace(&p.Selectors, o.Selectors)
	replace(&p.XPaths, o.XPaths)

	if len(o.Attributes) > 0 {
		if p.Attributes == nil {
			p.Attributes = make(map[string]string, len(o.Attributes))
		}
		for k, v := range o.Attributes {
			p.Attributes[k] = v
		}
	}

	return p
}

func replace(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = cloneStrings(src)
	}
}
