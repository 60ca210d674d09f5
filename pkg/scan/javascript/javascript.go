// Package javascript provides the Node.js ecosystem for the scan
// engine: regex-based import extraction over .js/.jsx/.ts/.tsx sources,
// package.json manifest parsing, and a static built-in module catalog.
package javascript

import (
	"context"
	"regexp"

	"github.com/depscout/depscout/pkg/scan"
)

// validName accepts npm package names, including scoped prefixes
// ("@babel"). Anything else found by the regexes is discarded.
var validName = regexp.MustCompile(`^@?[a-zA-Z0-9][-a-zA-Z0-9._]*$`)

// validManifestName accepts the full npm name form declared in
// package.json keys, including the "@scope/name" shape. Keys that
// would not be a legal npm name (spaces, shell metacharacters) are
// dropped before they can reach the result or an installer argv.
var validManifestName = regexp.MustCompile(`^(@[a-zA-Z0-9][-a-zA-Z0-9._]*/)?[a-zA-Z0-9][-a-zA-Z0-9._]*$`)

// Ecosystem is the Node.js scan configuration.
var Ecosystem = &scan.Ecosystem{
	Name:       "nodejs",
	SourceExts: []string{".js", ".jsx", ".ts", ".tsx"},
	OutputFile: "package_dependencies.txt",
	Extractor:  Extractor{},
	Manifests: []scan.ManifestParser{
		&PackageJSONParser{},
	},
	ValidName:         func(s string) bool { return validName.MatchString(s) },
	ValidManifestName: func(s string) bool { return validManifestName.MatchString(s) },
	NewCatalog: func(context.Context, scan.Options) (*scan.Catalog, error) {
		return scan.NewCatalog(builtinModules, "node:"), nil
	},
}
