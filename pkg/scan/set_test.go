package scan

import "testing"

func TestSetAddDeduplicates(t *testing.T) {
	s := NewSet()
	if !s.Add("requests") {
		t.Error("first Add should report a new member")
	}
	if s.Add("requests") {
		t.Error("second Add of the same name should report false")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if !s.Has("requests") {
		t.Error("Has should report membership")
	}
	if s.Has("flask") {
		t.Error("Has should not report a missing name")
	}
}

func TestSetSorted(t *testing.T) {
	s := NewSet()
	for _, n := range []string{"zlib-ng", "aiohttp", "requests", "flask"} {
		s.Add(n)
	}

	got := s.Sorted()
	want := []string{"aiohttp", "flask", "requests", "zlib-ng"}
	if len(got) != len(want) {
		t.Fatalf("Sorted = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sorted[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCatalogExcludes(t *testing.T) {
	c := NewCatalog([]string{"os", "sys", "json"}, "node:")

	tests := []struct {
		name string
		want bool
	}{
		{"os", true},
		{"json", true},
		{"requests", false},
		{"node:fs", true},
		{"nodeish", false},
	}
	for _, tt := range tests {
		if got := c.Excludes(tt.name); got != tt.want {
			t.Errorf("Excludes(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
