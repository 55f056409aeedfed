package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mrjoshuak/htmlwash/policy"
)

// Form field names accepted by the washing endpoints.
const (
	fieldHTML              = "html"
	fieldPreset            = "cleanup-preset"
	fieldClassNames        = "class_names"
	fieldPartialClassNames = "partial_class_names"
	fieldClassPrefixes     = "class_prefixes"
	fieldAttributes        = "attributes"
	fieldIDs               = "ids"
	fieldSelectors         = "selectors"
	fieldXPaths            = "xpaths"
	fieldScrubURLs         = "scrub_urls"
)

// washRequest is the decoded form of a washing request.
type washRequest struct {
	HTML      string
	Preset    string
	Overrides policy.Overrides
	ScrubURLs bool
}

// decodeForm builds a washRequest from form values. Values are used as
// sent; only empty list entries are dropped. The html field is not
// validated here.
func decodeForm(form url.Values) washRequest {
	req := washRequest{
		HTML:   form.Get(fieldHTML),
		Preset: form.Get(fieldPreset),
		Overrides: policy.Overrides{
			ClassNames:        nonEmpty(form[fieldClassNames]),
			PartialClassNames: nonEmpty(form[fieldPartialClassNames]),
			ClassPrefixes:     nonEmpty(form[fieldClassPrefixes]),
			IDs:               nonEmpty(form[fieldIDs]),
			Selectors:         nonEmpty(form[fieldSelectors]),
			XPaths:            nonEmpty(form[fieldXPaths]),
			Attributes:        decodeAttributes(form),
		},
		ScrubURLs: parseBool(form.Get(fieldScrubURLs)),
	}
	return req
}

// decodeAttributes reads the attribute keys named by the repeated
// attributes field. Each key's value comes from the form field of the same
// name; a key with no such field matches the empty value.
func decodeAttributes(form url.Values) map[string]string {
	keys := nonEmpty(form[fieldAttributes])
	if len(keys) == 0 {
		return nil
	}

	attrs := make(map[string]string, len(keys))
	for _, key := range keys {
		attrs[key] = form.Get(key)
	}
	return attrs
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(s string) bool {
	if strings.EqualFold(s, "on") || strings.EqualFold(s, "yes") {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
