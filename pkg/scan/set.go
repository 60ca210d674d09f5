package scan

import "sort"

// Set is the working dependency-name collection for one scan. Membership
// testing and insertion are O(1); duplicates are ignored.
type Set struct {
	names map[string]struct{}
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{names: make(map[string]struct{})}
}

// Add inserts name and reports whether it was newly added.
// Adding an existing name is a no-op returning false.
func (s *Set) Add(name string) bool {
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Has reports whether name is a member.
func (s *Set) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.names)
}

// Sorted returns the members as a lexicographically sorted slice.
// Sorted output is a correctness requirement: generated manifests and
// listings must be reproducible across runs.
func (s *Set) Sorted() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
