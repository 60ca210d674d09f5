package install

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"

	"github.com/depscout/depscout/pkg/errors"
)

// PythonResolver probes importability with the system interpreter.
type PythonResolver struct{}

func (PythonResolver) Resolvable(ctx context.Context, name string) (bool, error) {
	script := fmt.Sprintf(
		"import importlib.util, sys; sys.exit(0 if importlib.util.find_spec(%q) else 1)", name)
	return probe(exec.CommandContext(ctx, "python3", "-c", script))
}

// NodeResolver probes resolvability with node's module resolution.
// Dir scopes the lookup so a project-local node_modules is honored.
type NodeResolver struct {
	Dir string
}

func (r NodeResolver) Resolvable(ctx context.Context, name string) (bool, error) {
	cmd := exec.CommandContext(ctx, "node", "-e", fmt.Sprintf("require.resolve(%q)", name))
	cmd.Dir = r.Dir
	return probe(cmd)
}

// probe runs cmd and maps its exit status to a resolvability answer.
// Exit 0 means resolvable, any non-zero exit means not; a start failure
// is a real error.
func probe(cmd *exec.Cmd) (bool, error) {
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return false, nil
	}
	return false, errors.Wrap(errors.ErrCodeInstall, err, "failed to start %s", cmd.Path)
}

// SpecFor returns the installer invocation for an ecosystem name.
func SpecFor(ecosystem string) (Spec, error) {
	switch ecosystem {
	case "python":
		return Spec{Tool: "python3", Args: []string{"-m", "pip", "install"}}, nil
	case "nodejs":
		return Spec{Tool: "npm", Args: []string{"install"}}, nil
	}
	return Spec{}, errors.New(errors.ErrCodeInvalidEcosystem, "unknown ecosystem: %s", ecosystem)
}

// ResolverFor returns the resolvability prober for an ecosystem name.
// dir scopes resolvers that honor project-local installs.
func ResolverFor(ecosystem, dir string) (Resolver, error) {
	switch ecosystem {
	case "python":
		return PythonResolver{}, nil
	case "nodejs":
		return NodeResolver{Dir: dir}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidEcosystem, "unknown ecosystem: %s", ecosystem)
}
