package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/depscout/depscout/pkg/cache"
	"github.com/depscout/depscout/pkg/install"
	"github.com/depscout/depscout/pkg/scan"
	"github.com/depscout/depscout/pkg/scan/javascript"
	"github.com/depscout/depscout/pkg/scan/python"
)

// ecosystems is the list of supported scan targets.
var ecosystems = []*scan.Ecosystem{
	python.Ecosystem,
	javascript.Ecosystem,
}

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	excludeDirs []string // extra directory names to skip
	output      string   // manifest output path (default: <dir>/<ecosystem default>)
	write       bool     // write the manifest file after scanning
	review      bool     // interactively select names before writing/installing
	doInstall   bool     // install names that don't resolve locally
	refresh     bool     // bypass the catalog cache
}

// newScanCmd creates the scan command with ecosystem-specific subcommands.
func newScanCmd() *cobra.Command {
	opts := scanOpts{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract third-party dependency names from a project tree",
		Long: `Scan a project directory for third-party dependencies.

Source files are statically analyzed for import statements and manifest
files are parsed for declared dependencies. Names belonging to the
language's standard library are filtered out.

Examples:
  depscout scan python .                       # Scan the current directory
  depscout scan nodejs ./web --write           # Write package_dependencies.txt
  depscout scan python . --review --install    # Pick names, install missing ones`,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.excludeDirs, "exclude-dir", nil, "additional directory names to skip (repeatable)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "manifest output path (implies --write)")
	cmd.PersistentFlags().BoolVar(&opts.write, "write", false, "write the sorted manifest file")
	cmd.PersistentFlags().BoolVar(&opts.review, "review", false, "interactively select names before writing or installing")
	cmd.PersistentFlags().BoolVar(&opts.doInstall, "install", false, "install names that do not resolve locally")
	cmd.PersistentFlags().BoolVar(&opts.refresh, "refresh", false, "bypass the catalog cache")

	for _, eco := range ecosystems {
		cmd.AddCommand(ecoCmd(eco, &opts))
	}

	return cmd
}

// ecoCmd creates an ecosystem-specific scan subcommand (e.g., "scan python").
func ecoCmd(eco *scan.Ecosystem, opts *scanOpts) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <directory>", eco.Name),
		Short: fmt.Sprintf("Scan for %s dependencies", eco.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runScan(c.Context(), eco, opts, args[0])
		},
	}
}

// scanListener streams scan events to the terminal. Discoveries print as
// they happen; per-file status goes to the debug log.
type scanListener struct {
	logger *charmlog.Logger
}

func (l *scanListener) OnScanStart(id uuid.UUID, root, ecosystem string) {
	l.logger.Debugf("scan %s started: %s (%s)", id, root, ecosystem)
}

func (l *scanListener) OnFile(path string) {
	l.logger.Debugf("processing %s", path)
}

func (l *scanListener) OnDependency(name string) {
	printFound(name)
}

func (l *scanListener) OnScanFinish(res *scan.Result) {
	l.logger.Debugf("scan %s finished: %d names, %d files", res.ID, len(res.Names), res.Files)
}

func (l *scanListener) OnScanError(err error) {
	l.logger.Errorf("scan failed: %v", err)
}

func runScan(ctx context.Context, eco *scan.Ecosystem, opts *scanOpts, dir string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	backend, err := newCache(ctx, logger)
	if err != nil {
		logger.Warnf("Cache unavailable, catalog fetches will not persist: %v", err)
		backend = cache.NewNullCache()
	}
	defer backend.Close()

	printInfo("Scanning %s for %s dependencies", dir, eco.Name)

	res, err := scan.Run(ctx, scan.Request{
		Root:        dir,
		Ecosystem:   eco,
		ExcludeDirs: opts.excludeDirs,
	}, scan.Options{
		Cache:    backend,
		Refresh:  opts.refresh,
		Listener: &scanListener{logger: logger},
		Logf:     func(format string, args ...any) { logger.Warnf(format, args...) },
	})
	if err != nil {
		return err
	}

	for _, d := range res.Diagnostics {
		printWarning("Skipped %s: %s", d.Path, d.Message)
	}
	if res.Cancelled {
		printWarning("Scan interrupted, results are partial")
	}

	names := res.Names
	if len(names) == 0 {
		printInfo("No third-party dependencies found")
		return nil
	}
	prog.done(fmt.Sprintf("Found %d dependencies in %d files", len(names), res.Files))

	if opts.review {
		selected, ok, err := reviewNames(names)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Review cancelled, nothing written")
			return nil
		}
		names = selected
	}

	if opts.write || opts.output != "" {
		out := opts.output
		if out == "" {
			out = filepath.Join(dir, eco.OutputFile)
		}
		if err := scan.WriteManifest(out, names); err != nil {
			return err
		}
		printSuccess("Wrote %d names", len(names))
		printFile(out)
	}

	if opts.doInstall {
		if err := installMissing(ctx, eco.Name, dir, names); err != nil {
			return err
		}
	}

	if !opts.write && opts.output == "" && !opts.doInstall {
		printDetail("%s", strings.Join(names, ", "))
	}
	return nil
}

// installMissing probes which names do not resolve locally and installs
// them with the ecosystem's package manager.
func installMissing(ctx context.Context, ecosystem, dir string, names []string) error {
	logger := loggerFromContext(ctx)

	resolver, err := install.ResolverFor(ecosystem, dir)
	if err != nil {
		return err
	}

	sp := newSpinner(ctx, "Probing installed packages...")
	sp.Start()
	missing, err := install.Missing(ctx, resolver, names)
	sp.Stop()
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		printSuccess("All %d dependencies already resolve", len(names))
		return nil
	}

	printInfo("Installing %d missing packages: %s", len(missing), strings.Join(missing, ", "))
	spec, err := install.SpecFor(ecosystem)
	if err != nil {
		return err
	}
	res, err := install.Run(ctx, spec, missing)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		logger.Debugf("installer output:\n%s", res.Output)
		printError("Installer exited with status %d", res.ExitCode)
		return nil
	}
	printSuccess("Installed %d packages", len(missing))
	return nil
}

// newCache selects the cache backend: Redis when DEPSCOUT_REDIS_ADDR is
// set, otherwise a file cache under the user cache directory.
func newCache(ctx context.Context, logger *charmlog.Logger) (cache.Cache, error) {
	if addr := os.Getenv("DEPSCOUT_REDIS_ADDR"); addr != "" {
		logger.Debugf("using redis cache at %s", addr)
		return cache.NewRedisCache(ctx, addr)
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the catalog cache directory.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "depscout"), nil
}
