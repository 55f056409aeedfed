/*
Package htmlwash strips disallowed markup from HTML according to a declarative
removal policy and emits minified HTML, markdown, or an HTML subset suited to
browser automation.

Each call parses the input with a tolerant HTML5 parser, deletes every element
matched by the policy (class names, partial class names, attribute pairs, ids,
CSS selectors, XPath expressions), strips policy class prefixes from surviving
elements, drops comments, then filters the tree:

  - ModeWash and the markdown modes unwrap every tag missing from the
    allow-list (children are kept in place) and prune attributes to the ones
    the allow-list names for that tag.
  - ModeAutomation keeps every tag but only id, class, name, type, href, alt,
    placeholder and data-* attributes.

The body content is then serialized and minified. ModeMarkdown additionally
converts the result to markdown.

Basic Usage:

    import (
        "github.com/mrjoshuak/htmlwash"
        "github.com/mrjoshuak/htmlwash/policy"
    )

    w := htmlwash.New()

    p := policy.Resolve(policy.Builtin(), "pub-w", policy.Overrides{
        IDs: []string{"cookie-banner"},
    })

    clean, err := w.Wash(rawHTML, p)
    if err != nil {
        // Handle error
    }

    md, err := w.Markdownify(rawHTML, p)

Options:

    w := htmlwash.New(
        htmlwash.WithScrubURLs(true),
        htmlwash.WithMaxInputSize(1 << 20),
    )

A Washer is safe for concurrent use. Presets returned by policy.Builtin and
policy.LoadPresets should be treated as read-only.
*/
package htmlwash
