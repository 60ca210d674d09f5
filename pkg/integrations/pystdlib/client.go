// Package pystdlib fetches versioned Python standard-library module
// listings from the pypi/stdlib-list data set.
//
// The listing for a given interpreter version is used to build the
// exclusion catalog for Python scans. Lookups are cached; callers fall
// back to a bundled static list when this source is unavailable.
package pystdlib

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/depscout/depscout/pkg/cache"
	"github.com/depscout/depscout/pkg/integrations"
)

const baseURL = "https://raw.githubusercontent.com/pypi/stdlib-list/main/stdlib_list/lists"

// DefaultTTL is how long fetched listings stay cached. Listings for a
// released interpreter version are effectively immutable, so the TTL is
// generous.
const DefaultTTL = 30 * 24 * time.Hour

// knownVersions are the interpreter versions the data set publishes,
// in ascending order.
var knownVersions = []string{
	"3.6", "3.7", "3.8", "3.9", "3.10", "3.11", "3.12", "3.13",
}

// Client fetches standard-library listings with caching.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a listing client backed by the given cache.
func NewClient(backend cache.Cache) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, DefaultTTL),
		baseURL: baseURL,
	}
}

// Modules returns the top-level standard-library module names for the
// closest published version at or below the requested interpreter
// version (e.g. "3.12"). If refresh is true the cache is bypassed.
func (c *Client) Modules(ctx context.Context, version string, refresh bool) ([]string, error) {
	v, ok := closestVersion(version)
	if !ok {
		return nil, fmt.Errorf("no standard-library listing at or below version %q", version)
	}

	key := "pystdlib:" + v
	data, err := c.Cached(ctx, key, refresh, func() ([]byte, error) {
		return c.GetText(ctx, fmt.Sprintf("%s/%s.txt", c.baseURL, v))
	})
	if err != nil {
		return nil, err
	}

	return parseListing(data), nil
}

// parseListing extracts unique top-level module names from a listing.
// The data set includes dotted submodules (e.g. "email.mime"); only the
// first path segment matters for exclusion.
func parseListing(data []byte) []string {
	seen := make(map[string]bool)
	var names []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, _, _ := strings.Cut(line, ".")
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// closestVersion picks the highest known version that is <= requested.
func closestVersion(requested string) (string, bool) {
	reqMajor, reqMinor, ok := splitVersion(requested)
	if !ok {
		return "", false
	}

	best := ""
	for _, v := range knownVersions {
		major, minor, _ := splitVersion(v)
		if major < reqMajor || (major == reqMajor && minor <= reqMinor) {
			best = v
		}
	}
	return best, best != ""
}

func splitVersion(v string) (major, minor int, ok bool) {
	a, b, found := strings.Cut(v, ".")
	if !found {
		return 0, 0, false
	}
	major, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	// Tolerate patch suffixes like "3.12.1".
	if i := strings.IndexByte(b, '.'); i >= 0 {
		b = b[:i]
	}
	minor, err = strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
