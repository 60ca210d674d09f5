package install

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/depscout/depscout/pkg/errors"
)

type fakeResolver struct {
	resolvable map[string]bool
	errOn      string
}

func (f fakeResolver) Resolvable(_ context.Context, name string) (bool, error) {
	if name == f.errOn {
		return false, stderrors.New("probe failed")
	}
	return f.resolvable[name], nil
}

func TestMissing(t *testing.T) {
	r := fakeResolver{resolvable: map[string]bool{"requests": true, "flask": false}}
	missing, err := Missing(context.Background(), r, []string{"requests", "flask", "aiohttp"})
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	want := []string{"flask", "aiohttp"}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Errorf("missing[%d] = %q, want %q", i, missing[i], want[i])
		}
	}
}

func TestMissingProbeErrorCountsAsMissing(t *testing.T) {
	r := fakeResolver{resolvable: map[string]bool{"requests": true}, errOn: "weird"}
	missing, err := Missing(context.Background(), r, []string{"requests", "weird"})
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	if len(missing) != 1 || missing[0] != "weird" {
		t.Errorf("missing = %v, want [weird]", missing)
	}
}

func TestMissingHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Missing(ctx, fakeResolver{}, []string{"a", "b"}); err == nil {
		t.Error("expected context error")
	}
}

func TestRunNoPackages(t *testing.T) {
	res, err := Run(context.Background(), Spec{Tool: "definitely-not-a-tool"}, nil)
	if err != nil {
		t.Fatalf("Run with no packages should be a no-op: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestRunToolMissing(t *testing.T) {
	res, err := Run(context.Background(), Spec{Tool: "depscout-no-such-tool"}, []string{"pkg"})
	if err == nil {
		t.Fatal("expected error for missing tool")
	}
	if !errors.Is(err, errors.ErrCodeInstall) {
		t.Errorf("error code = %v, want INSTALL_FAILED", errors.GetCode(err))
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1 for start failure", res.ExitCode)
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	res, err := Run(context.Background(), Spec{Tool: "false"}, []string{"pkg"})
	if err != nil {
		t.Fatalf("non-zero exit should not be an error: %v", err)
	}
	if res.ExitCode == 0 {
		t.Error("expected non-zero exit code")
	}
}

func TestSpecFor(t *testing.T) {
	py, err := SpecFor("python")
	if err != nil || py.Tool != "python3" {
		t.Errorf("SpecFor(python) = %+v, %v", py, err)
	}
	js, err := SpecFor("nodejs")
	if err != nil || js.Tool != "npm" {
		t.Errorf("SpecFor(nodejs) = %+v, %v", js, err)
	}
	if _, err := SpecFor("ruby"); err == nil {
		t.Error("expected error for unknown ecosystem")
	}
}

func TestResolverFor(t *testing.T) {
	if _, err := ResolverFor("python", ""); err != nil {
		t.Errorf("ResolverFor(python): %v", err)
	}
	r, err := ResolverFor("nodejs", "/tmp/project")
	if err != nil {
		t.Fatalf("ResolverFor(nodejs): %v", err)
	}
	if nr, ok := r.(NodeResolver); !ok || nr.Dir != "/tmp/project" {
		t.Errorf("ResolverFor(nodejs) = %#v, want dir-scoped NodeResolver", r)
	}
	if _, err := ResolverFor("ruby", ""); err == nil {
		t.Error("expected error for unknown ecosystem")
	}
}
