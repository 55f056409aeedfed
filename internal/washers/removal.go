package washers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmlwash/policy"
)

// Rules is a Policy prepared for matching: string lists become sets and
// selectors and XPath expressions are compiled once.
type Rules struct {
	classNames        map[string]bool
	partialClassNames []string
	classPrefixes     []string
	attributes        map[string]string
	ids               map[string]bool
	selectors         []cascadia.Selector
	xpaths            []*xpath.Expr
}

// CompileRules prepares p for Remove. It fails only on selectors or XPath
// expressions that do not compile.
func CompileRules(p policy.Policy) (*Rules, error) {
	r := &Rules{
		classNames:        toSet(p.ClassNames),
		partialClassNames: p.PartialClassNames,
		classPrefixes:     p.ClassPrefixes,
		attributes:        p.Attributes,
		ids:               toSet(p.IDs),
	}

	for _, s := range p.Selectors {
		sel, err := cascadia.Compile(s)
		if err != nil {
			return nil, WrapPolicyError(err, "CompileRules", "selector "+s)
		}
		r.selectors = append(r.selectors, sel)
	}
	for _, x := range p.XPaths {
		expr, err := xpath.Compile(x)
		if err != nil {
			return nil, WrapPolicyError(err, "CompileRules", "xpath "+x)
		}
		r.xpaths = append(r.xpaths, expr)
	}

	return r, nil
}

// Remove applies the removal rules to doc in three ordered steps:
// class-prefix stripping, deletion of every matching element, and
// deletion of comment and doctype nodes.
func Remove(doc *goquery.Document, r *Rules) {
	if len(r.classPrefixes) > 0 {
		stripClassPrefixes(doc, r.classPrefixes)
	}

	// XPath results are collected against the prefix-stripped tree, before
	// any deletion changes it.
	xpathMatches := r.matchXPaths(doc)

	for _, n := range elements(doc) {
		if r.matches(n) || xpathMatches[n] {
			decompose(n)
		}
	}

	removeMetadata(doc)
}

// stripClassPrefixes drops every class token starting with one of the
// prefixes. An element left without tokens loses its class attribute.
func stripClassPrefixes(doc *goquery.Document, prefixes []string) {
	for _, n := range elements(doc) {
		class, ok := getAttr(n, "class")
		if !ok {
			continue
		}

		tokens := strings.Fields(class)
		kept := tokens[:0]
		for _, tok := range tokens {
			if !hasAnyPrefix(tok, prefixes) {
				kept = append(kept, tok)
			}
		}
		if len(kept) == len(tokens) {
			continue
		}

		if len(kept) == 0 {
			removeAttr(n, "class")
		} else {
			setAttr(n, "class", strings.Join(kept, " "))
		}
	}
}

// matches reports whether n is deleted by the class, attribute, id or
// selector rules.
func (r *Rules) matches(n *html.Node) bool {
	if class, ok := getAttr(n, "class"); ok {
		for _, tok := range strings.Fields(class) {
			if r.classNames[tok] {
				return true
			}
			for _, partial := range r.partialClassNames {
				if strings.Contains(tok, partial) {
					return true
				}
			}
		}
	}

	for key, want := range r.attributes {
		if val, ok := getAttr(n, key); ok && val == want {
			return true
		}
	}

	if id, ok := getAttr(n, "id"); ok && r.ids[id] {
		return true
	}

	for _, sel := range r.selectors {
		if sel.Match(n) {
			return true
		}
	}

	return false
}

func (r *Rules) matchXPaths(doc *goquery.Document) map[*html.Node]bool {
	if len(r.xpaths) == 0 || len(doc.Nodes) == 0 {
		return nil
	}

	matched := make(map[*html.Node]bool)
	for _, expr := range r.xpaths {
		for _, n := range htmlquery.QuerySelectorAll(doc.Nodes[0], expr) {
			if n.Type == html.ElementNode {
				matched[n] = true
			}
		}
	}
	return matched
}

// removeMetadata removes comments and doctype declarations
func removeMetadata(doc *goquery.Document) {
	var found []*html.Node
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.CommentNode || n.Type == html.DoctypeNode {
			found = append(found, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, root := range doc.Nodes {
		walk(root)
	}

	for _, n := range found {
		decompose(n)
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
