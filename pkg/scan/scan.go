// Package scan implements the static dependency extraction engine.
//
// A scan walks a project directory tree for one ecosystem (Python or
// Node.js), extracts candidate dependency names from manifest files and
// source-file import statements, filters them against an exclusion
// catalog of standard-library and built-in identifiers, and merges the
// accepted names into a deduplicated, lexicographically sorted result.
//
// Discovery is incremental: a [Listener] receives one event per newly
// accepted name, per-file status updates, and the finalized result.
// Cancellation is cooperative via context, checked between directories
// and between files; a cancelled scan still returns its partial result.
package scan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/depscout/depscout/pkg/cache"
)

// Request describes a single scan. It is read-only once created.
type Request struct {
	Root        string     // project directory to scan
	Ecosystem   *Ecosystem // target ecosystem
	ExcludeDirs []string   // extra directory names to skip, merged with defaults
}

// Options configures scan behavior beyond the request itself.
type Options struct {
	Cache    cache.Cache          // backend for catalog lookups (default: NullCache)
	Refresh  bool                 // bypass the catalog cache for fresh data
	Listener Listener             // incremental event consumer (default: no-op)
	Logf     func(string, ...any) // progress/warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Listener == nil {
		opts.Listener = NoopListener{}
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	return opts
}

// Diagnostic records a non-fatal per-file failure encountered during a
// scan: unreadable files, malformed source, malformed manifests.
type Diagnostic struct {
	Path    string // file the failure relates to
	Message string // human-readable description
}

// Result is the outcome of one scan. It is an immutable snapshot handed
// to the caller when the walk completes (naturally or via cancellation).
type Result struct {
	ID          uuid.UUID     // correlates events with this scan
	Ecosystem   string        // ecosystem selector ("python" | "nodejs")
	Root        string        // scanned directory
	Names       []string      // accepted dependency names, sorted
	Diagnostics []Diagnostic  // non-fatal per-file failures
	Files       int           // source and manifest files processed
	Cancelled   bool          // the walk stopped early via context
	Duration    time.Duration // wall-clock scan time
}

// Ecosystem bundles everything the walker needs for one source platform:
// which files to look at, how to extract candidates from them, and how
// to build the exclusion catalog.
type Ecosystem struct {
	Name              string                                           // selector ("python", "nodejs")
	SourceExts        []string                                         // source file extensions (with dot)
	OutputFile        string                                           // default manifest filename for generated output
	Extractor         Extractor                                        // source import extractor
	Manifests         []ManifestParser                                 // manifest parsers, tried in order
	ValidName         func(string) bool                                // validity rule for source-derived candidates
	ValidManifestName func(string) bool                                // validity rule for manifest-derived candidates
	NewCatalog        func(context.Context, Options) (*Catalog, error) // exclusion catalog builder
}

// Extractor extracts candidate dependency names from source text.
// Implementations must not panic on malformed input; a returned error is
// treated as a recoverable per-file diagnostic, never as fatal.
type Extractor interface {
	// Extract returns candidate names found in src. Candidates are
	// already reduced to their top-level identifier.
	Extract(ctx context.Context, src []byte) ([]string, error)
}

// ManifestParser extracts declared dependency names from a structured
// manifest file. Parse errors are recoverable per-file diagnostics.
type ManifestParser interface {
	// Parse returns the candidate names declared in the manifest.
	Parse(data []byte) ([]string, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "requirements.txt").
	Type() string
}
