package washers

import (
	"github.com/microcosm-cc/bluemonday"
)

// Scrubber removes links and image sources with unsafe URL schemes from
// HTML that has already been filtered to an allow-list. It admits exactly
// the tags and attributes of that allow-list, so it changes nothing except
// URLs such as javascript: that are not http, https, mailto or relative.
type Scrubber struct {
	policy *bluemonday.Policy
}

// NewScrubber builds a Scrubber mirroring allow.
func NewScrubber(allow AllowList) *Scrubber {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()

	for tag, attrs := range allow {
		p.AllowElements(tag)
		if len(attrs) > 0 {
			p.AllowAttrs(attrs...).OnElements(tag)
		}
	}

	return &Scrubber{policy: p}
}

// Scrub returns s with unsafe URLs removed.
func (s *Scrubber) Scrub(src string) string {
	return s.policy.Sanitize(src)
}
