package server

import (
	"net/url"
	"reflect"
	"testing"
)

func TestDecodeForm(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"html":                {"<p>x</p>"},
		"cleanup-preset":      {" pub-w "},
		"class_names":         {"a", "", " b"},
		"partial_class_names": {"hid"},
		"class_prefixes":      {"x-"},
		"ids":                 {"main"},
		"attributes":          {"type", "role"},
		"type":                {"hidden"},
		"scrub_urls":          {"on"},
	}

	req := decodeForm(form)

	if req.HTML != "<p>x</p>" {
		t.Errorf("HTML = %q", req.HTML)
	}
	if req.Preset != " pub-w " {
		t.Errorf("Preset = %q, want %q", req.Preset, " pub-w ")
	}
	// Values pass through untouched; only empty entries are dropped.
	if !reflect.DeepEqual(req.Overrides.ClassNames, []string{"a", " b"}) {
		t.Errorf("ClassNames = %q, want [\"a\" \" b\"]", req.Overrides.ClassNames)
	}
	if !reflect.DeepEqual(req.Overrides.PartialClassNames, []string{"hid"}) {
		t.Errorf("PartialClassNames = %v", req.Overrides.PartialClassNames)
	}
	if !reflect.DeepEqual(req.Overrides.ClassPrefixes, []string{"x-"}) {
		t.Errorf("ClassPrefixes = %v", req.Overrides.ClassPrefixes)
	}
	if !reflect.DeepEqual(req.Overrides.IDs, []string{"main"}) {
		t.Errorf("IDs = %v", req.Overrides.IDs)
	}
	wantAttrs := map[string]string{"type": "hidden", "role": ""}
	if !reflect.DeepEqual(req.Overrides.Attributes, wantAttrs) {
		t.Errorf("Attributes = %v, want %v", req.Overrides.Attributes, wantAttrs)
	}
	if !req.ScrubURLs {
		t.Error("ScrubURLs = false, want true")
	}
}

func TestDecodeFormEmpty(t *testing.T) {
	t.Parallel()

	req := decodeForm(url.Values{})

	if req.HTML != "" || req.Preset != "" || req.ScrubURLs {
		t.Errorf("decodeForm(empty) = %+v, want zero request", req)
	}
	if req.Overrides.Attributes != nil {
		t.Errorf("Attributes = %v, want nil", req.Overrides.Attributes)
	}
	if req.Overrides.ClassNames != nil {
		t.Errorf("ClassNames = %v, want nil", req.Overrides.ClassNames)
	}
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"on", true},
		{"YES", true},
		{"0", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		if got := parseBool(tt.in); got != tt.want {
			t.Errorf("parseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
