package htmlwash

import (
	"errors"
	"fmt"
	"io"

	"github.com/mrjoshuak/htmlwash/internal/markdown"
	"github.com/mrjoshuak/htmlwash/internal/washers"
	"github.com/mrjoshuak/htmlwash/policy"
)

var (
	// ErrUnknownMode is returned for a Mode outside the defined pipelines.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrInputTooLarge is returned by ProcessReader when the input exceeds
	// Options.MaxInputSize.
	ErrInputTooLarge = errors.New("input too large")
)

// Washer runs the washing pipelines. Implementations are safe for
// concurrent use: each call parses its own tree.
type Washer interface {
	// Process runs the pipeline selected by mode.
	Process(mode Mode, html string, p policy.Policy) (string, error)

	// ProcessReader reads HTML from r and runs the pipeline selected by mode.
	ProcessReader(mode Mode, r io.Reader, p policy.Policy) (string, error)

	// Wash removes policy matches, filters to the wash allow-list and minifies.
	Wash(html string, p policy.Policy) (string, error)

	// FilterMarkdown removes policy matches, filters to the markdown
	// allow-list and minifies.
	FilterMarkdown(html string, p policy.Policy) (string, error)

	// Markdownify converts the output of FilterMarkdown to markdown.
	Markdownify(html string, p policy.Policy) (string, error)

	// WashAutomation removes policy matches and keeps only automation
	// attributes, without unwrapping any tag.
	WashAutomation(html string, p policy.Policy) (string, error)
}

// Option represents a function that modifies Options.
type Option func(*Options)

// WithScrubURLs enables or disables removal of URLs whose scheme is not
// http, https or mailto from the allow-list pipelines. Relative URLs are
// kept. ModeAutomation output is never scrubbed.
func WithScrubURLs(enable bool) Option {
	return func(o *Options) {
		o.ScrubURLs = enable
	}
}

// WithMaxInputSize sets the maximum number of bytes ProcessReader accepts.
func WithMaxInputSize(size int64) Option {
	return func(o *Options) {
		o.MaxInputSize = size
	}
}

// WithWashAllowList replaces the allow-list used by ModeWash.
func WithWashAllowList(allow AllowList) Option {
	return func(o *Options) {
		o.WashAllowList = allow
	}
}

// WithMarkdownAllowList replaces the allow-list used by the markdown modes.
func WithMarkdownAllowList(allow AllowList) Option {
	return func(o *Options) {
		o.MarkdownAllowList = allow
	}
}

// washer is the concrete implementation of the Washer interface.
type washer struct {
	options       Options
	minifier      *washers.Minifier
	markdown      *markdown.Converter
	washScrub     *washers.Scrubber
	markdownScrub *washers.Scrubber
}

// New creates a Washer with the provided options.
//
// Example:
//
//	w := htmlwash.New(
//	    htmlwash.WithScrubURLs(true),
//	)
func New(opts ...Option) Washer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	w := &washer{
		options:  options,
		minifier: washers.NewMinifier(),
		markdown: markdown.NewConverter(),
	}
	if options.ScrubURLs {
		w.washScrub = washers.NewScrubber(options.WashAllowList)
		w.markdownScrub = washers.NewScrubber(options.MarkdownAllowList)
	}
	return w
}

func (w *washer) Wash(html string, p policy.Policy) (string, error) {
	return w.Process(ModeWash, html, p)
}

func (w *washer) FilterMarkdown(html string, p policy.Policy) (string, error) {
	return w.Process(ModeMarkdownHTML, html, p)
}

func (w *washer) Markdownify(html string, p policy.Policy) (string, error) {
	return w.Process(ModeMarkdown, html, p)
}

func (w *washer) WashAutomation(html string, p policy.Policy) (string, error) {
	return w.Process(ModeAutomation, html, p)
}

// ProcessReader reads at most Options.MaxInputSize bytes from r.
func (w *washer) ProcessReader(mode Mode, r io.Reader, p policy.Policy) (string, error) {
	limit := w.options.MaxInputSize
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}

	return w.Process(mode, string(data), p)
}

// Process parses html, applies the removal rules of p, filters the tree
// for mode and serializes it.
func (w *washer) Process(mode Mode, html string, p policy.Policy) (string, error) {
	if _, ok := modeNames[mode]; !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	rules, err := washers.CompileRules(p)
	if err != nil {
		return "", err
	}

	doc, err := washers.Parse(html)
	if err != nil {
		return "", err
	}

	washers.Remove(doc, rules)

	var rewrites []func(string) string
	switch mode {
	case ModeWash:
		washers.FilterAllowed(doc, w.options.WashAllowList)
		if w.washScrub != nil {
			rewrites = append(rewrites, w.washScrub.Scrub)
		}
	case ModeMarkdownHTML, ModeMarkdown:
		washers.FilterAllowed(doc, w.options.MarkdownAllowList)
		if w.markdownScrub != nil {
			rewrites = append(rewrites, w.markdownScrub.Scrub)
		}
	case ModeAutomation:
		washers.FilterAutomation(doc)
	}

	out, err := washers.Serialize(doc, w.minifier, rewrites...)
	if err != nil {
		return "", err
	}

	if mode == ModeMarkdown {
		md, err := w.markdown.Convert(out)
		if err != nil {
			return "", fmt.Errorf("converting to markdown: %w", err)
		}
		return md, nil
	}
	return out, nil
}

// IsPolicyError reports whether err came from compiling a policy, such as an
// invalid CSS selector or XPath expression. Callers can treat these as bad
// input rather than internal failures.
func IsPolicyError(err error) bool {
	return washers.IsPolicyError(err)
}
