package washers

import (
	"sort"

	"github.com/PuerkitoBio/goquery"
)

// AllowList maps each permitted tag to the attributes it may keep. A tag
// missing from the map is unwrapped; a tag mapped to no attributes keeps
// none.
type AllowList map[string][]string

// WashAllowList returns the allow-list of the general washing pipeline.
func WashAllowList() AllowList {
	return AllowList{
		"html": {}, "title": {}, "body": {}, "head": {},
		"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
		"hr": {}, "a": {"href"}, "i": {}, "img": {"src", "width", "height", "alt"},
		"ol": {}, "ul": {}, "li": {}, "p": {}, "strong": {}, "table": {},
		"tbody": {}, "td": {"colspan", "rowspan"}, "th": {"colspan", "rowspan"},
		"tr": {}, "figure": {}, "figcaption": {},
	}
}

// MarkdownAllowList returns the allow-list used to prepare HTML for
// markdown conversion: block structure, links, images, emphasis, code,
// tables and breaks.
func MarkdownAllowList() AllowList {
	return AllowList{
		"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
		"p": {}, "a": {"href"}, "ul": {}, "ol": {}, "li": {}, "blockquote": {},
		"code": {}, "pre": {}, "img": {"src", "alt"}, "strong": {}, "em": {},
		"table": {}, "thead": {}, "tbody": {}, "tr": {}, "th": {}, "td": {},
		"hr": {}, "br": {},
	}
}

// Tags returns the permitted tags in sorted order.
func (a AllowList) Tags() []string {
	tags := make([]string, 0, len(a))
	for tag := range a {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (a AllowList) sets() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(a))
	for tag, attrs := range a {
		out[tag] = toSet(attrs)
	}
	return out
}

// FilterAllowed unwraps every element whose tag is not in allow and prunes
// the attributes of the rest. Running it twice gives the same tree as
// running it once.
func FilterAllowed(doc *goquery.Document, allow AllowList) {
	allowed := allow.sets()

	for _, n := range elements(doc) {
		attrs, ok := allowed[n.Data]
		if !ok {
			unwrap(n)
			continue
		}
		keepAttrs(n, func(name string) bool { return attrs[name] })
	}
}
