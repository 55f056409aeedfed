package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func TestConvert(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name      string
		input     string
		wantLines []string
	}{
		{
			name:      "heading and inline link",
			input:     `<h1>T</h1><p>Body <a href="x">link</a></p>`,
			wantLines: []string{"# T", "Body [link](x)"},
		},
		{
			name:      "emphasis",
			input:     `<p><strong>bold</strong> and <em>it</em></p>`,
			wantLines: []string{"**bold** and *it*"},
		},
		{
			name:      "image",
			input:     `<p><img src="a.png" alt="A"></p>`,
			wantLines: []string{"![A](a.png)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Convert(tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			lines := strings.Split(got, "\n")
			for _, want := range tt.wantLines {
				if !containsLine(lines, want) {
					t.Errorf("Convert() = %q, want a line %q", got, want)
				}
			}
		})
	}
}

func TestConvertBlank(t *testing.T) {
	got, err := NewConverter().Convert("  \n ")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != "" {
		t.Errorf("Convert() = %q, want empty", got)
	}
}

// The produced markdown must render back to the same structure.
func TestConvertRoundTrip(t *testing.T) {
	input := `<h2>Title</h2><ul><li>one</li><li>two</li></ul><blockquote><p>q</p></blockquote>` +
		`<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>`

	md, err := NewConverter().Convert(input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	var out bytes.Buffer
	renderer := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := renderer.Convert([]byte(md), &out); err != nil {
		t.Fatalf("goldmark Convert() error = %v", err)
	}

	html := out.String()
	for _, want := range []string{"<h2>Title</h2>", "<li>one</li>", "<li>two</li>", "<blockquote>", "<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered markdown %q missing %q (markdown was %q)", html, want, md)
		}
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}
