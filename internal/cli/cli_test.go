package cli

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestArtifactBase(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "bell.toml", "bell"},
		{"", "circuits/bell.json", "circuits/bell"},
		{"diagram.svg", "bell.toml", "diagram"},
		{"diagram.txt", "bell.toml", "diagram"},
		{"diagram", "bell.toml", "diagram"},
		{"archive.tar", "bell.toml", "archive.tar"},
	}
	for _, tt := range tests {
		if got := artifactBase(tt.output, tt.input); got != tt.want {
			t.Errorf("artifactBase(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	// A single explicit output path is honored verbatim.
	if got := artifactPath("diagram", "diagram.svg", "svg", true); got != "diagram.svg" {
		t.Errorf("artifactPath(single explicit) = %q, want diagram.svg", got)
	}

	// Multiple formats fan out from the base path by extension.
	if got := artifactPath("bell", "", "text", false); got != "bell.txt" {
		t.Errorf("artifactPath(text) = %q, want bell.txt", got)
	}
	if got := artifactPath("bell", "", "dot", false); got != "bell.dot" {
		t.Errorf("artifactPath(dot) = %q, want bell.dot", got)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg,text,json"); !reflect.DeepEqual(got, []string{"svg", "text", "json"}) {
		t.Errorf("parseFormats() = %v, want [svg text json]", got)
	}
}

func TestParseEdges(t *testing.T) {
	// No flags: a linear chain covering every wire.
	got, err := parseEdges(nil, 4)
	if err != nil {
		t.Fatalf("parseEdges(nil) error = %v", err)
	}
	want := [][2]int{{0, 1}, {1, 2}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseEdges(nil, 4) = %v, want %v", got, want)
	}

	got, err = parseEdges([]string{"0,2", " 1 , 3 "}, 4)
	if err != nil {
		t.Fatalf("parseEdges() error = %v", err)
	}
	want = [][2]int{{0, 2}, {1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseEdges() = %v, want %v", got, want)
	}

	for _, bad := range []string{"0", "0,1,2", "a,b"} {
		if _, err := parseEdges([]string{bad}, 4); err == nil {
			t.Errorf("parseEdges(%q) should fail", bad)
		}
	}
}

func TestTemplateGroups_Unknown(t *testing.T) {
	if _, err := templateGroups("ghz", 3, nil); err == nil {
		t.Error("templateGroups(unknown) should fail")
	}
}

func TestCacheDir_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}
