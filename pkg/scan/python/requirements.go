package python

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// nameRe matches the distribution name at the start of a requirement
// specifier, before any extras, version pins, or markers.
var nameRe = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// RequirementsParser reads pip requirements files. Names are taken
// verbatim (no segmentation); comments, pip options, and URL-based
// requirements are skipped.
type RequirementsParser struct{}

func (p *RequirementsParser) Type() string { return "requirements.txt" }

// Supports matches requirements.txt and its common variants
// (requirements-dev.txt, requirements_test.txt, ...).
func (p *RequirementsParser) Supports(filename string) bool {
	return strings.HasPrefix(filename, "requirements") && strings.HasSuffix(filename, ".txt")
}

func (p *RequirementsParser) Parse(data []byte) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Direct references and local paths carry no usable name.
		if strings.Contains(line, "://") || strings.HasPrefix(line, ".") || strings.HasPrefix(line, "/") {
			continue
		}
		if m := nameRe.FindStringSubmatch(line); m != nil {
			names = append(names, m[1])
		}
	}
	return names, scanner.Err()
}
