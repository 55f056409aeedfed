package washers

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
)

const htmlMediaType = "text/html"

// Minifier collapses insignificant whitespace in serialized HTML. It keeps
// end tags, attribute quotes, default attribute values and document tags,
// so only whitespace changes. Contents of pre and textarea are left as-is.
// A Minifier is safe for concurrent use.
type Minifier struct {
	m *minify.M
}

// NewMinifier returns a whitespace-only HTML minifier.
func NewMinifier() *Minifier {
	m := minify.New()
	m.Add(htmlMediaType, &mhtml.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	return &Minifier{m: m}
}

// Minify returns s with insignificant whitespace removed.
func (mf *Minifier) Minify(s string) (string, error) {
	out, err := mf.m.String(htmlMediaType, s)
	if err != nil {
		return "", WrapMinifyError(err, "Minify", "minifying HTML")
	}
	return out, nil
}

// Render serializes the children of the body element, or of the whole
// document when no body is left (for example after body was unwrapped).
func Render(doc *goquery.Document) (string, error) {
	if len(doc.Nodes) == 0 {
		return "", nil
	}

	root := doc.Nodes[0]
	if body := findBody(root); body != nil {
		root = body
	}

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", WrapRenderError(err, "Render", "rendering "+c.Data)
		}
	}
	return buf.String(), nil
}

// Serialize renders doc, passes the markup through each rewrite in order,
// and minifies the result.
func Serialize(doc *goquery.Document, mf *Minifier, rewrites ...func(string) string) (string, error) {
	out, err := Render(doc)
	if err != nil {
		return "", err
	}
	for _, rewrite := range rewrites {
		out = rewrite(out)
	}
	return mf.Minify(out)
}
