package python

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/depscout/depscout/pkg/errors"
)

// importsQuery captures module names from both import forms:
//
//	import a.b, c as d
//	from a.b import x
//
// Relative imports ("from . import x") have no dotted_name module and
// produce no capture, which is exactly the desired skip.
const importsQuery = `
(import_statement name: (dotted_name) @import)
(import_statement name: (aliased_import name: (dotted_name) @import))
(import_from_statement module_name: (dotted_name) @from)
`

// dynamicImportRe catches the common dynamic-import escape hatch with a
// literal module name. Computed names are invisible to static analysis.
var dynamicImportRe = regexp.MustCompile(`importlib\.import_module\(\s*['"]([A-Za-z_][A-Za-z0-9_.]*)['"]`)

// Extractor extracts top-level module names from Python source using a
// real parser rather than line regexes, so multiline and parenthesized
// imports are handled correctly.
type Extractor struct {
	lang  *sitter.Language
	query *sitter.Query
}

// NewExtractor compiles the import query once. The query is a constant,
// so compilation cannot fail at runtime.
func NewExtractor() *Extractor {
	lang := python.GetLanguage()
	query, err := sitter.NewQuery([]byte(importsQuery), lang)
	if err != nil {
		panic("python: invalid imports query: " + err.Error())
	}
	return &Extractor{lang: lang, query: query}
}

// Extract returns the top-level segment of every imported module name.
// Source that fails to parse into a valid tree is rejected with an
// error; the caller records it as a per-file diagnostic.
func (e *Extractor) Extract(ctx context.Context, src []byte) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.New(errors.ErrCodeParse, "source contains syntax errors")
	}

	var names []string
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(e.query, root)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			names = append(names, topLevel(capture.Node.Content(src)))
		}
	}

	for _, m := range dynamicImportRe.FindAllSubmatch(src, -1) {
		names = append(names, topLevel(string(m[1])))
	}
	return names, nil
}

// topLevel reduces a dotted module path to its first segment, the unit
// of installation ("concurrent.futures" belongs to "concurrent").
func topLevel(module string) string {
	if i := strings.IndexByte(module, '.'); i >= 0 {
		return module[:i]
	}
	return module
}
