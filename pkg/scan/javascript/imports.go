package javascript

import (
	"context"
	"regexp"
	"strings"
)

// Import targets are pulled with line-oriented regexes rather than a
// full parser: fast, tolerant of broken files, and good enough for
// dependency discovery. The trade-off is accepted false positives, e.g.
// an import statement inside a string literal.
var importPatterns = []*regexp.Regexp{
	// import x from 'pkg'; import {a, b} from "pkg"; import 'pkg'
	regexp.MustCompile(`(?m)^\s*import\s+(?:[\w${},*\s]+\s+from\s+)?['"]([^'"]+)['"]`),
	// const x = require('pkg')
	regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`),
	// await import('pkg')
	regexp.MustCompile(`\bimport\(\s*['"]([^'"]+)['"]\s*\)`),
	// export { x } from 'pkg'; export * from 'pkg'
	regexp.MustCompile(`(?m)^\s*export\s+(?:[\w${},*\s]+\s+)?from\s+['"]([^'"]+)['"]`),
}

// Extractor extracts top-level package names from JavaScript and
// TypeScript source. It never fails: unreadable constructs simply
// produce no matches.
type Extractor struct{}

func (Extractor) Extract(_ context.Context, src []byte) ([]string, error) {
	var names []string
	for _, re := range importPatterns {
		for _, m := range re.FindAllSubmatch(src, -1) {
			if name := packageName(string(m[1])); name != "" {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// packageName reduces an import target to its top-level package name.
// Relative and absolute paths are not packages and map to "".
func packageName(target string) string {
	if target == "" || strings.HasPrefix(target, ".") || strings.HasPrefix(target, "/") {
		return ""
	}
	if i := strings.IndexByte(target, '/'); i >= 0 {
		return target[:i]
	}
	return target
}
