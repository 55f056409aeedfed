package washers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AutomationAttributes returns the attributes a browser-automation script
// needs to locate and drive elements. Any data-* attribute is kept as well.
func AutomationAttributes() []string {
	return []string{"id", "class", "name", "type", "href", "alt", "placeholder"}
}

// FilterAutomation keeps only automation attributes on every element. No
// tag is unwrapped; structure is left to the removal rules.
func FilterAutomation(doc *goquery.Document) {
	allowed := toSet(AutomationAttributes())

	for _, n := range elements(doc) {
		keepAttrs(n, func(name string) bool {
			return allowed[name] || strings.HasPrefix(name, "data-")
		})
	}
}
