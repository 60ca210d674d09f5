// Package install probes whether discovered dependencies resolve in the
// local environment and installs the ones that do not, via the native
// package manager of each ecosystem.
package install

import (
	"context"
	stderrors "errors"
	"os/exec"

	"github.com/depscout/depscout/pkg/errors"
)

// Resolver reports whether a dependency name resolves in the local
// environment. Implementations shell out to the runtime; tests inject
// fakes.
type Resolver interface {
	// Resolvable reports whether name can currently be imported/required.
	Resolvable(ctx context.Context, name string) (bool, error)
}

// Spec describes how to install packages for one ecosystem.
type Spec struct {
	Tool string   // executable name
	Args []string // leading arguments; package names are appended
}

// Result is the outcome of one installer invocation.
type Result struct {
	ExitCode int    // -1 when the tool could not be started
	Output   string // combined stdout+stderr
}

// Missing filters names down to those the resolver cannot resolve.
// A resolver error for one name counts it as missing rather than
// aborting: an uncertain probe should not hide a candidate.
func Missing(ctx context.Context, r Resolver, names []string) ([]string, error) {
	var missing []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return missing, err
		}
		ok, err := r.Resolvable(ctx, name)
		if err != nil || !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// Run invokes the installer for the given packages. A non-zero exit is
// reported in the Result, not as an error; only a start failure (tool
// missing from PATH) returns an error.
func Run(ctx context.Context, spec Spec, packages []string) (*Result, error) {
	if len(packages) == 0 {
		return &Result{ExitCode: 0}, nil
	}

	args := append(append([]string{}, spec.Args...), packages...)
	cmd := exec.CommandContext(ctx, spec.Tool, args...)
	out, err := cmd.CombinedOutput()
	res := &Result{ExitCode: cmd.ProcessState.ExitCode(), Output: string(out)}
	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return res, nil
		}
		return res, errors.Wrap(errors.ErrCodeInstall, err, "failed to start %s", spec.Tool)
	}
	return res, nil
}
