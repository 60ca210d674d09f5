package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/depscout/depscout/pkg/errors"
)

// DefaultExcludedDirs are skipped at every depth, matched by name. The
// extra names from Request.ExcludeDirs are merged with these.
var DefaultExcludedDirs = []string{
	"venv", ".venv", "env", ".env",
	"node_modules", "site-packages", "__pycache__",
	".git", ".hg", ".svn",
	"test", "tests", "__tests__",
	".tox", ".mypy_cache", ".pytest_cache",
	"dist", "build", ".idea", ".vscode",
}

// Run executes a scan. Only root-path validation is fatal: a missing or
// non-directory root returns an error alongside an empty result. Every
// per-file failure is recorded as a diagnostic and the walk continues.
//
// Cancellation via ctx stops the walk at the next directory or file
// boundary; the partial result is returned with Cancelled set and a nil
// error.
func Run(ctx context.Context, req Request, opts Options) (*Result, error) {
	opts = opts.WithDefaults()
	eco := req.Ecosystem

	res := &Result{
		ID:        uuid.New(),
		Ecosystem: eco.Name,
		Root:      req.Root,
		Names:     []string{},
	}

	info, err := os.Stat(req.Root)
	if err != nil {
		ferr := errors.Wrap(errors.ErrCodeNotFound, err, "directory not found: %s", req.Root)
		opts.Listener.OnScanError(ferr)
		return res, ferr
	}
	if !info.IsDir() {
		ferr := errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", req.Root)
		opts.Listener.OnScanError(ferr)
		return res, ferr
	}

	opts.Listener.OnScanStart(res.ID, req.Root, eco.Name)
	start := time.Now()

	catalog, err := eco.NewCatalog(ctx, opts)
	if err != nil {
		// Catalog construction is never fatal: builders fall back to a
		// static listing and only signal total failure, which still
		// leaves built-in names available.
		opts.Logf("exclusion catalog degraded: %v", err)
		catalog = NewCatalog(nil)
	}

	w := &walker{
		req:     req,
		opts:    opts,
		eco:     eco,
		catalog: catalog,
		found:   NewSet(),
		res:     res,
		skipDir: excludedDirSet(req.ExcludeDirs),
	}

	// Manifests first: declared dependencies are authoritative and give
	// the listener early signal before the (larger) source pass.
	w.walk(ctx, w.visitManifest)
	if !res.Cancelled {
		w.walk(ctx, w.visitSource)
	}

	res.Names = w.found.Sorted()
	res.Duration = time.Since(start)
	opts.Listener.OnScanFinish(res)
	return res, nil
}

func excludedDirSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(DefaultExcludedDirs)+len(extra))
	for _, d := range DefaultExcludedDirs {
		set[d] = struct{}{}
	}
	for _, d := range extra {
		if d != "" {
			set[d] = struct{}{}
		}
	}
	return set
}

type walker struct {
	req     Request
	opts    Options
	eco     *Ecosystem
	catalog *Catalog
	found   *Set
	res     *Result
	skipDir map[string]struct{}
}

// walk runs one filesystem pass, dispatching files to visit. Directory
// exclusion and cancellation checks happen here so both passes share
// identical traversal semantics.
func (w *walker) walk(ctx context.Context, visit func(ctx context.Context, path string)) {
	_ = filepath.WalkDir(w.req.Root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			w.res.Cancelled = true
			return fs.SkipAll
		}
		if err != nil {
			w.diag(path, fmt.Sprintf("cannot access: %v", err))
			return nil
		}
		if d.IsDir() {
			if path == w.req.Root {
				return nil
			}
			if _, skip := w.skipDir[d.Name()]; skip {
				return fs.SkipDir
			}
			return nil
		}
		visit(ctx, path)
		return nil
	})
}

// visitManifest processes one file if a manifest parser claims it.
func (w *walker) visitManifest(_ context.Context, path string) {
	name := filepath.Base(path)
	for _, p := range w.eco.Manifests {
		if !p.Supports(name) {
			continue
		}
		w.opts.Listener.OnFile(path)
		w.res.Files++

		data, err := os.ReadFile(path)
		if err != nil {
			w.diag(path, fmt.Sprintf("read failed: %v", err))
			return
		}
		names, err := p.Parse(data)
		if err != nil {
			w.diag(path, fmt.Sprintf("invalid %s: %v", p.Type(), err))
			return
		}
		for _, n := range names {
			if w.eco.ValidManifestName != nil && !w.eco.ValidManifestName(n) {
				continue
			}
			w.accept(n)
		}
		return
	}
}

// visitSource processes one file if its extension matches the ecosystem.
func (w *walker) visitSource(ctx context.Context, path string) {
	if !w.isSourceFile(path) {
		return
	}
	w.opts.Listener.OnFile(path)
	w.res.Files++

	data, err := os.ReadFile(path)
	if err != nil {
		w.diag(path, fmt.Sprintf("read failed: %v", err))
		return
	}
	names, err := w.eco.Extractor.Extract(ctx, data)
	if err != nil {
		w.diag(path, fmt.Sprintf("extraction failed: %v", err))
		return
	}
	for _, n := range names {
		if w.eco.ValidName != nil && !w.eco.ValidName(n) {
			continue
		}
		w.accept(n)
	}
}

func (w *walker) isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.eco.SourceExts {
		if ext == e {
			return true
		}
	}
	return false
}

// accept filters a candidate against the catalog and records it, firing
// the discovery event only on first sight.
func (w *walker) accept(name string) {
	if name == "" || w.catalog.Excludes(name) {
		return
	}
	if w.found.Add(name) {
		w.opts.Listener.OnDependency(name)
	}
}

func (w *walker) diag(path, msg string) {
	w.res.Diagnostics = append(w.res.Diagnostics, Diagnostic{Path: path, Message: msg})
	w.opts.Logf("skipping %s: %s", path, msg)
}
