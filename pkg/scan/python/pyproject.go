package python

import (
	"github.com/BurntSushi/toml"

	"github.com/depscout/depscout/pkg/errors"
)

// PyProjectParser reads PEP 621 pyproject.toml files, collecting names
// from project.dependencies and every project.optional-dependencies
// group. Entries are requirement specifiers, so the same name regex as
// requirements files applies.
type PyProjectParser struct{}

type pyProject struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

func (p *PyProjectParser) Type() string { return "pyproject.toml" }

func (p *PyProjectParser) Supports(filename string) bool {
	return filename == "pyproject.toml"
}

func (p *PyProjectParser) Parse(data []byte) ([]string, error) {
	var doc pyProject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid TOML")
	}

	specs := make([]string, 0, len(doc.Project.Dependencies))
	specs = append(specs, doc.Project.Dependencies...)
	for _, group := range doc.Project.OptionalDependencies {
		specs = append(specs, group...)
	}

	var names []string
	for _, spec := range specs {
		if m := nameRe.FindStringSubmatch(spec); m != nil {
			names = append(names, m[1])
		}
	}
	return names, nil
}
