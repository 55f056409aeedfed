// Package policy describes which markup the washing pipelines remove.
//
// A Policy is a plain value: it can be built by hand, looked up from a
// named preset, or resolved from a preset plus per-request overrides with
// Resolve. The zero value removes nothing.
package policy

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xpath"
)

// Policy is the set of removal rules applied before allow-list filtering.
// All matching is case-sensitive.
type Policy struct {
	// ClassNames deletes elements carrying a class token equal to one of these.
	ClassNames []string `yaml:"class_names,omitempty" json:"class_names,omitempty"`

	// PartialClassNames deletes elements carrying a class token that
	// contains one of these as a substring.
	PartialClassNames []string `yaml:"partial_class_names,omitempty" json:"partial_class_names,omitempty"`

	// ClassPrefixes strips matching class tokens from surviving elements.
	ClassPrefixes []string `yaml:"class_prefixes,omitempty" json:"class_prefixes,omitempty"`

	// Attributes deletes elements where any key=value pair matches exactly.
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`

	// IDs deletes elements whose id attribute is one of these.
	IDs []string `yaml:"ids,omitempty" json:"ids,omitempty"`

	// Selectors deletes elements matching any of these CSS selectors.
	Selectors []string `yaml:"selectors,omitempty" json:"selectors,omitempty"`

	// XPaths deletes element nodes selected by any of these expressions.
	XPaths []string `yaml:"xpaths,omitempty" json:"xpaths,omitempty"`
}

// IsEmpty reports whether p removes nothing.
func (p Policy) IsEmpty() bool {
	return len(p.ClassNames) == 0 &&
		len(p.PartialClassNames) == 0 &&
		len(p.ClassPrefixes) == 0 &&
		len(p.Attributes) == 0 &&
		len(p.IDs) == 0 &&
		len(p.Selectors) == 0 &&
		len(p.XPaths) == 0
}

// Clone returns a deep copy of p, so presets can be handed out without
// callers mutating the shared table.
func (p Policy) Clone() Policy {
	c := Policy{
		ClassNames:        cloneStrings(p.ClassNames),
		PartialClassNames: cloneStrings(p.PartialClassNames),
		ClassPrefixes:     cloneStrings(p.ClassPrefixes),
		IDs:               cloneStrings(p.IDs),
		Selectors:         cloneStrings(p.Selectors),
		XPaths:            cloneStrings(p.XPaths),
	}
	if p.Attributes != nil {
		c.Attributes = make(map[string]string, len(p.Attributes))
		for k, v := range p.Attributes {
			c.Attributes[k] = v
		}
	}
	return c
}

// Validate checks that every selector and XPath expression compiles.
func (p Policy) Validate() error {
	for _, s := range p.Selectors {
		if _, err := cascadia.Compile(s); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidSelector, s, err)
		}
	}
	for _, x := range p.XPaths {
		if _, err := xpath.Compile(x); err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidXPath, x, err)
		}
	}
	return nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
