package htmlwash

import (
	"fmt"
	"strings"

	"github.com/mrjoshuak/htmlwash/internal/washers"
)

// Version information for the htmlwash library.
const (
	Version = "0.4.0"
	Name    = "htmlwash"
)

// AllowList maps permitted tag names to the attributes they may keep.
// Tags missing from the map are unwrapped, not deleted.
type AllowList = washers.AllowList

// WashAllowList returns the default allow-list of ModeWash.
func WashAllowList() AllowList {
	return washers.WashAllowList()
}

// MarkdownAllowList returns the default allow-list of ModeMarkdownHTML and
// ModeMarkdown.
func MarkdownAllowList() AllowList {
	return washers.MarkdownAllowList()
}

// Mode selects one of the washing pipelines.
type Mode int

const (
	// ModeWash filters to the general allow-list and minifies.
	ModeWash Mode = iota
	// ModeMarkdownHTML filters to the markdown allow-list and minifies.
	ModeMarkdownHTML
	// ModeMarkdown runs ModeMarkdownHTML and converts the result to markdown.
	ModeMarkdown
	// ModeAutomation keeps every tag but only automation attributes.
	ModeAutomation
)

var modeNames = map[Mode]string{
	ModeWash:         "wash",
	ModeMarkdownHTML: "markdown-html",
	ModeMarkdown:     "markdown",
	ModeAutomation:   "automation",
}

// String returns the mode's flag name.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode flag name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ContentType returns the media type of the mode's output.
func (m Mode) ContentType() string {
	if m == ModeMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

// Options configures a Washer.
type Options struct {
	ScrubURLs         bool      // Drop javascript: and other non-standard URLs after filtering
	MaxInputSize      int64     // Maximum bytes read by ProcessReader
	WashAllowList     AllowList // Allow-list for ModeWash
	MarkdownAllowList AllowList // Allow-list for ModeMarkdownHTML and ModeMarkdown
}

// DefaultOptions returns the default washer options: no URL scrubbing,
// a 10MB input limit and the built-in allow-lists.
func DefaultOptions() Options {
	return Options{
		ScrubURLs:         false,
		MaxInputSize:      10 * 1024 * 1024, // 10MB
		WashAllowList:     washers.WashAllowList(),
		MarkdownAllowList: washers.MarkdownAllowList(),
	}
}
