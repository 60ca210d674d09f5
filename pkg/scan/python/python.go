// Package python provides the Python ecosystem for the scan engine:
// AST-based import extraction, requirements.txt and pyproject.toml
// manifest parsing, and a standard-library exclusion catalog keyed to
// the interpreter version.
package python

import (
	"regexp"

	"github.com/depscout/depscout/pkg/scan"
)

// validName matches a plausible top-level Python module name.
// Candidates failing this never reach the catalog check.
var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// validDistName matches a distribution name as declared in manifests,
// which may start with a digit ("3to2") unlike importable module names.
var validDistName = regexp.MustCompile(`^[A-Za-z0-9][-A-Za-z0-9._]*$`)

// Ecosystem is the Python scan configuration.
var Ecosystem = &scan.Ecosystem{
	Name:       "python",
	SourceExts: []string{".py"},
	OutputFile: "requirements.txt",
	Extractor:  NewExtractor(),
	Manifests: []scan.ManifestParser{
		&RequirementsParser{},
		&PyProjectParser{},
	},
	ValidName:         func(s string) bool { return validName.MatchString(s) },
	ValidManifestName: func(s string) bool { return validDistName.MatchString(s) },
	NewCatalog:        BuildCatalog,
}
