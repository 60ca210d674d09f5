package python

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"os/exec"

	"github.com/depscout/depscout/pkg/integrations/pystdlib"
	"github.com/depscout/depscout/pkg/scan"
)

// alwaysExcluded are names that never denote third-party packages, kept
// outside the fetched listings so they hold even in full-fallback mode.
var alwaysExcluded = []string{"__future__", "__main__", "builtins"}

//go:embed stdlib_fallback.txt
var stdlibFallback []byte

// Interpreter reports version and built-in module names of a Python
// runtime. Injectable so the catalog can be built without a real
// interpreter on the machine.
type Interpreter interface {
	// Info returns the interpreter version ("3.12.4") and its compiled-in
	// module names.
	Info(ctx context.Context) (version string, builtins []string, err error)
}

// SystemInterpreter probes the python3 binary on PATH.
type SystemInterpreter struct{}

const probeScript = `import json, sys
print(json.dumps({
    "version": "%d.%d.%d" % sys.version_info[:3],
    "builtins": list(sys.builtin_module_names),
}))`

func (SystemInterpreter) Info(ctx context.Context) (string, []string, error) {
	out, err := exec.CommandContext(ctx, "python3", "-c", probeScript).Output()
	if err != nil {
		return "", nil, err
	}
	var probe struct {
		Version  string   `json:"version"`
		Builtins []string `json:"builtins"`
	}
	if err := json.Unmarshal(out, &probe); err != nil {
		return "", nil, err
	}
	return probe.Version, probe.Builtins, nil
}

// BuildCatalog assembles the Python exclusion catalog using the system
// interpreter. See NewCatalogBuilder.
func BuildCatalog(ctx context.Context, opts scan.Options) (*scan.Catalog, error) {
	return NewCatalogBuilder(SystemInterpreter{})(ctx, opts)
}

// NewCatalogBuilder returns a catalog builder bound to the given
// interpreter. The catalog combines built-in module names from the
// interpreter with the standard-library listing for its version; when
// either source is unavailable the builder degrades to an embedded
// static listing and logs a warning rather than failing the scan.
func NewCatalogBuilder(interp Interpreter) func(context.Context, scan.Options) (*scan.Catalog, error) {
	return func(ctx context.Context, opts scan.Options) (*scan.Catalog, error) {
		names := append([]string{}, alwaysExcluded...)

		version, builtins, err := interp.Info(ctx)
		if err != nil {
			opts.Logf("python interpreter unavailable, using static catalog: %v", err)
			return scan.NewCatalog(append(names, fallbackModules()...)), nil
		}
		names = append(names, builtins...)

		client := pystdlib.NewClient(opts.Cache)
		modules, err := client.Modules(ctx, version, opts.Refresh)
		if err != nil {
			opts.Logf("stdlib listing for %s unavailable, using static catalog: %v", version, err)
			return scan.NewCatalog(append(names, fallbackModules()...)), nil
		}
		return scan.NewCatalog(append(names, modules...)), nil
	}
}

func fallbackModules() []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(stdlibFallback))
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			names = append(names, line)
		}
	}
	return names
}
