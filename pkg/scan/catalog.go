package scan

import "strings"

// Catalog is the authoritative "do not report" set for one ecosystem:
// language built-ins and standard-library module names. It is built once
// per scan and immutable afterwards.
type Catalog struct {
	names    map[string]struct{}
	prefixes []string
}

// NewCatalog builds a catalog from the given names. Optional prefixes
// exclude whole specifier families (e.g. "node:" built-in imports).
func NewCatalog(names []string, prefixes ...string) *Catalog {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return &Catalog{names: set, prefixes: prefixes}
}

// Excludes reports whether name belongs to the language/runtime itself
// and must never appear in a scan result.
func (c *Catalog) Excludes(name string) bool {
	if _, ok := c.names[name]; ok {
		return true
	}
	for _, p := range c.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Len returns the number of exact names in the catalog.
func (c *Catalog) Len() int {
	return len(c.names)
}
