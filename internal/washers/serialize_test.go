package washers

import (
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	mf := NewMinifier()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty document",
			input: ``,
			want:  ``,
		},
		{
			name:  "body children only",
			input: `<html><head><title>t</title></head><body><p>Y</p></body></html>`,
			want:  `<p>Y</p>`,
		},
		{
			name:  "inter-tag whitespace removed",
			input: "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>",
			want:  `<ul><li>a</li><li>b</li></ul>`,
		},
		{
			name:  "whitespace runs in text collapse",
			input: "<p>a   \t  b</p>",
			want:  `<p>a b</p>`,
		},
		{
			name:  "whitespace run with a newline keeps one newline",
			input: "<p>a   \n  b</p>",
			want:  "<p>a\nb</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			got, err := Serialize(doc, mf)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializePreservesPre(t *testing.T) {
	doc := mustParse(t, "<div>\n<pre>  line one\n    line two</pre>\n</div>")

	got, err := Serialize(doc, NewMinifier())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !strings.Contains(got, "  line one\n    line two") {
		t.Errorf("Serialize() altered pre content: %q", got)
	}
}

func TestRenderWithoutBody(t *testing.T) {
	doc := mustParse(t, `<p>x</p>`)
	FilterAllowed(doc, AllowList{"p": {}})

	if got, want := mustRender(t, doc), `<p>x</p>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestScrubber(t *testing.T) {
	s := NewScrubber(WashAllowList())

	got := s.Scrub(`<p><a href="javascript:alert(1)">bad</a> <a href="/ok">good</a> <img src="https://x/a.png" alt="a"></p>`)

	if strings.Contains(got, "javascript:") {
		t.Errorf("Scrub() kept javascript URL: %q", got)
	}
	for _, want := range []string{`href="/ok"`, "bad", "good", `src="https://x/a.png"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Scrub() = %q, want it to contain %q", got, want)
		}
	}
}
