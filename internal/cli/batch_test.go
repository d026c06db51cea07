package cli

import (
	"strings"
	"testing"
)

func TestReportSlug(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"comps.json", "comps"},
		{"exports/north.json", "north"},
		{"/abs/path/south.json", "south"},
		{".json", "report"},
		{"no-extension", "no-extension"},
	}
	for _, tc := range cases {
		if got := reportSlug(tc.path); got != tc.want {
			t.Errorf("reportSlug(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestReportSlugTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("x", 150) + ".json"
	if got := reportSlug(long); len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
}

func TestSluggerDisambiguatesCollidingBasenames(t *testing.T) {
	s := newSlugger()

	paths := []string{
		"east/comps.json",
		"north/comps.json",
		"south/comps.json",
		"west/other.json",
	}
	want := []string{"comps", "comps-2", "comps-3", "other"}

	seen := make(map[string]bool)
	for i, path := range paths {
		got := s.slug(path)
		if got != want[i] {
			t.Errorf("slug(%q) = %q, want %q", path, got, want[i])
		}
		if seen[got] {
			t.Errorf("slug %q assigned twice", got)
		}
		seen[got] = true
	}
}
