// Package washers implements the tree stages of the washing pipelines:
// parsing, policy-driven removal, allow-list filtering, and serialization.
//
// Every stage mutates a freshly parsed document in place. Documents are
// never shared between calls, so the stages need no locking.
package washers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse builds a document tree from raw HTML. The HTML5 parser recovers
// from malformed markup (implicit html/head/body, auto-closed tags), so
// errors only come from the reader.
func Parse(src string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, WrapParseError(err, "Parse", "parsing HTML")
	}
	return doc, nil
}

// elements returns every element below the document root in document
// order. The slice is a snapshot, so callers may restructure the tree
// while iterating and still visit each original element exactly once.
func elements(doc *goquery.Document) []*html.Node {
	return doc.Find("*").Nodes
}

// findBody returns the first body element below n, or nil.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// unwrap replaces n with its children in its parent's child list.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// decompose removes n and its whole subtree.
func decompose(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// getAttr returns the value of the named attribute and whether it exists.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr sets the named attribute in place, keeping its position.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// removeAttr deletes the named attribute if present.
func removeAttr(n *html.Node, key string) {
	keepAttrs(n, func(k string) bool { return k != key })
}

// keepAttrs drops every attribute whose name fails keep, preserving order.
// Foreign attributes are named with their prefix, e.g. "xlink:href".
func keepAttrs(n *html.Node, keep func(name string) bool) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		if keep(name) {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}
