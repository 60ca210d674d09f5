package scan

import (
	"os"
	"sort"
	"strings"

	"github.com/depscout/depscout/pkg/errors"
)

// WriteManifest writes names to path, one per line, lexicographically
// sorted. The input slice is not modified. An existing file at path is
// overwritten.
func WriteManifest(path string, names []string) error {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	var b strings.Builder
	for _, n := range sorted {
		b.WriteString(n)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", path)
	}
	return nil
}
