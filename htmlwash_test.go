package htmlwash_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mrjoshuak/htmlwash"
	"github.com/mrjoshuak/htmlwash/policy"
)

func TestWash(t *testing.T) {
	w := htmlwash.New()

	tests := []struct {
		name   string
		input  string
		policy policy.Policy
		want   string
	}{
		{
			name:   "class removal deletes instead of unwrapping",
			input:  `<div class="gen-field">X</div><p>Y</p>`,
			policy: pubW(t),
			want:   `<p>Y</p>`,
		},
		{
			name:  "comment removed",
			input: `<!-- note --><h1>Title</h1>`,
			want:  `<h1>Title</h1>`,
		},
		{
			name:   "id match empties output",
			input:  `<h2 id="tt4">Hi</h2>`,
			policy: pubW(t),
			want:   ``,
		},
		{
			name:  "unknown wrappers unwrap",
			input: `<div class="card"><section><p>Y</p></section></div>`,
			want:  `<p>Y</p>`,
		},
		{
			name:  "empty input",
			input: ``,
			want:  ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.Wash(tt.input, tt.policy)
			if err != nil {
				t.Fatalf("Wash() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Wash() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWashImageAttributes(t *testing.T) {
	got, err := htmlwash.New().Wash(`<img src="a.png" class="hero" onclick="x()" loading="lazy" alt="A">`, policy.Policy{})
	if err != nil {
		t.Fatalf("Wash() error = %v", err)
	}

	for _, want := range []string{`src="a.png"`, `alt="A"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Wash() = %q, want it to contain %q", got, want)
		}
	}
	for _, unwanted := range []string{"class", "onclick", "loading"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("Wash() = %q, should not contain %q", got, unwanted)
		}
	}
}

func TestWashUnwrapDropsAttributes(t *testing.T) {
	input := `<div id="wrapper" data-track="1"><p>one <span title="tip">two</span></p></div>`

	got, err := htmlwash.New().Wash(input, policy.Policy{})
	if err != nil {
		t.Fatalf("Wash() error = %v", err)
	}
	if got != `<p>one two</p>` {
		t.Errorf("Wash() = %q, want %q", got, `<p>one two</p>`)
	}
}

func TestFilterMarkdown(t *testing.T) {
	input := `<article><h1 class="t">T</h1><p>Body <b>bold</b> <em>em</em> <a href="x" title="y">link</a></p><pre>a  b</pre></article>`

	got, err := htmlwash.New().FilterMarkdown(input, policy.Policy{})
	if err != nil {
		t.Fatalf("FilterMarkdown() error = %v", err)
	}

	for _, want := range []string{`<h1>T</h1>`, `<em>em</em>`, `<a href="x">link</a>`, `<pre>a  b</pre>`} {
		if !strings.Contains(got, want) {
			t.Errorf("FilterMarkdown() = %q, want it to contain %q", got, want)
		}
	}
	for _, unwanted := range []string{"article", "<b>", "title=", "class="} {
		if strings.Contains(got, unwanted) {
			t.Errorf("FilterMarkdown() = %q, should not contain %q", got, unwanted)
		}
	}
}

func TestMarkdownify(t *testing.T) {
	got, err := htmlwash.New().Markdownify(`<h1>T</h1><p>Body <a href="x">link</a></p>`, policy.Policy{})
	if err != nil {
		t.Fatalf("Markdownify() error = %v", err)
	}

	lines := strings.Split(got, "\n")
	var heading, link bool
	for _, l := range lines {
		if strings.TrimSpace(l) == "# T" {
			heading = true
		}
		if strings.Contains(l, "[link](x)") {
			link = true
		}
	}
	if !heading {
		t.Errorf("Markdownify() = %q, want a level-1 heading for T", got)
	}
	if !link {
		t.Errorf("Markdownify() = %q, want an inline link to x", got)
	}
}

func TestWashAutomation(t *testing.T) {
	input := `<div class="dc-x keep" style="color:red" data-id="1"><input type="hidden" name="csrf">` +
		`<button onclick="go()" aria-label="go" name="go">Go</button><custom-widget placeholder="p">w</custom-widget></div>`

	got, err := htmlwash.New().WashAutomation(input, pubW(t))
	if err != nil {
		t.Fatalf("WashAutomation() error = %v", err)
	}

	for _, want := range []string{`class="keep"`, `data-id="1"`, `name="go"`, `<custom-widget placeholder="p">`} {
		if !strings.Contains(got, want) {
			t.Errorf("WashAutomation() = %q, want it to contain %q", got, want)
		}
	}
	for _, unwanted := range []string{"dc-x", "style", "onclick", "aria-label", "csrf"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("WashAutomation() = %q, should not contain %q", got, unwanted)
		}
	}
}

func TestScrubURLs(t *testing.T) {
	input := `<p><a href="javascript:alert(1)">bad</a> <a href="https://example.com/">good</a></p>`

	plain, err := htmlwash.New().Wash(input, policy.Policy{})
	if err != nil {
		t.Fatalf("Wash() error = %v", err)
	}
	if !strings.Contains(plain, "alert(1)") {
		t.Errorf("Wash() without scrubbing = %q, want javascript URL kept", plain)
	}

	scrubbed, err := htmlwash.New(htmlwash.WithScrubURLs(true)).Wash(input, policy.Policy{})
	if err != nil {
		t.Fatalf("Wash() error = %v", err)
	}
	if strings.Contains(scrubbed, "alert(1)") {
		t.Errorf("Wash() with scrubbing = %q, want javascript URL removed", scrubbed)
	}
	if !strings.Contains(scrubbed, `href="https://example.com/"`) {
		t.Errorf("Wash() with scrubbing = %q, want safe link kept", scrubbed)
	}
}

func TestCustomAllowList(t *testing.T) {
	w := htmlwash.New(htmlwash.WithWashAllowList(htmlwash.AllowList{"p": {"class"}}))

	got, err := w.Wash(`<h1>H</h1><p class="c" id="i">x</p>`, policy.Policy{})
	if err != nil {
		t.Fatalf("Wash() error = %v", err)
	}
	if got != `H<p class="c">x</p>` {
		t.Errorf("Wash() = %q, want %q", got, `H<p class="c">x</p>`)
	}
}

func TestProcessErrors(t *testing.T) {
	w := htmlwash.New(htmlwash.WithMaxInputSize(8))

	if _, err := w.Process(htmlwash.Mode(42), "<p>x</p>", policy.Policy{}); !errors.Is(err, htmlwash.ErrUnknownMode) {
		t.Errorf("Process(bad mode) error = %v, want %v", err, htmlwash.ErrUnknownMode)
	}

	if _, err := w.Wash("<p>x</p>", policy.Policy{Selectors: []string{"p["}}); err == nil {
		t.Error("Wash(bad selector) error = nil, want error")
	}

	if _, err := w.ProcessReader(htmlwash.ModeWash, strings.NewReader("<p>too long</p>"), policy.Policy{}); !errors.Is(err, htmlwash.ErrInputTooLarge) {
		t.Errorf("ProcessReader(large) error = %v, want %v", err, htmlwash.ErrInputTooLarge)
	}

	got, err := w.ProcessReader(htmlwash.ModeWash, strings.NewReader("<p>x</p>"), policy.Policy{})
	if err != nil {
		t.Fatalf("ProcessReader() error = %v", err)
	}
	if got != "<p>x</p>" {
		t.Errorf("ProcessReader() = %q, want %q", got, "<p>x</p>")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []htmlwash.Mode{htmlwash.ModeWash, htmlwash.ModeMarkdownHTML, htmlwash.ModeMarkdown, htmlwash.ModeAutomation} {
		got, err := htmlwash.ParseMode(m.String())
		if err != nil {
			t.Errorf("ParseMode(%q) error = %v", m.String(), err)
			continue
		}
		if got != m {
			t.Errorf("ParseMode(%q) = %v, want %v", m.String(), got, m)
		}
	}

	if _, err := htmlwash.ParseMode("pdf"); !errors.Is(err, htmlwash.ErrUnknownMode) {
		t.Errorf("ParseMode(pdf) error = %v, want %v", err, htmlwash.ErrUnknownMode)
	}
}
