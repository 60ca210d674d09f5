package python

import (
	"sort"
	"testing"
)

func TestRequirementsParser(t *testing.T) {
	data := []byte(`# pinned deps
requests==2.31.0
flask>=2.0,<3
ruamel.yaml
uvicorn[standard]~=0.23
typing-extensions ; python_version < "3.11"

-r common.txt
--index-url https://pypi.example.com/simple
git+https://github.com/org/repo.git#egg=thing
./local/package
`)
	p := &RequirementsParser{}
	names, err := p.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"requests", "flask", "ruamel.yaml", "uvicorn", "typing-extensions"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRequirementsSupports(t *testing.T) {
	p := &RequirementsParser{}
	tests := []struct {
		filename string
		want     bool
	}{
		{"requirements.txt", true},
		{"requirements-dev.txt", true},
		{"requirements_test.txt", true},
		{"requirements.in", false},
		{"pyproject.toml", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := p.Supports(tt.filename); got != tt.want {
			t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestPyProjectParser(t *testing.T) {
	data := []byte(`
[project]
name = "demo"
dependencies = [
    "requests>=2.0",
    "click",
]

[project.optional-dependencies]
dev = ["pytest>=7", "black"]
docs = ["sphinx"]
`)
	p := &PyProjectParser{}
	names, err := p.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sort.Strings(names)

	want := []string{"black", "click", "pytest", "requests", "sphinx"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPyProjectParserInvalidTOML(t *testing.T) {
	p := &PyProjectParser{}
	if _, err := p.Parse([]byte("[project\nbroken")); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
