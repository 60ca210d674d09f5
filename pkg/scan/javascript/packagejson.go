package javascript

import (
	"encoding/json"
	"sort"

	"github.com/depscout/depscout/pkg/errors"
)

// PackageJSONParser reads package.json manifests. Dependency names are
// the object keys of the dependency sections, taken verbatim: scoped
// packages keep their full "@scope/name" form here, unlike source
// imports which reduce to the scope segment.
type PackageJSONParser struct{}

type packageJSON struct {
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

func (p *PackageJSONParser) Type() string { return "package.json" }

func (p *PackageJSONParser) Supports(filename string) bool {
	return filename == "package.json"
}

func (p *PackageJSONParser) Parse(data []byte) ([]string, error) {
	var doc packageJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid JSON")
	}

	var names []string
	for _, section := range []map[string]string{doc.Dependencies, doc.DevDependencies, doc.PeerDependencies} {
		for name := range section {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
