package python

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax is returned when the source contains syntax the grammar cannot parse.
var ErrSyntax = errors.New("invalid Python syntax")

// ImportForm distinguishes the two import statement syntaxes.
type ImportForm int

const (
	// FormDirect is `import a.b [as c]`.
	FormDirect ImportForm = iota
	// FormFrom is `from a.b import x [as y]`.
	FormFrom
)

func (f ImportForm) String() string {
	switch f {
	case FormDirect:
		return "import"
	case FormFrom:
		return "from"
	default:
		return "unknown"
	}
}

// ImportedName is one name listed in a from-form import.
type ImportedName struct {
	Name  string
	Alias string
}

// Import is a single raw import declaration.
type Import struct {
	Form ImportForm
	// Path is the dotted module path without leading dots.
	Path string
	// Level counts the leading dots of a relative import; 0 for absolute imports.
	Level int
	// Alias is the local name of a direct-form import.
	Alias    string
	Names    []ImportedName
	Wildcard bool
	// Line is the 1-based line the statement starts on.
	Line int
}

// IsRelative reports whether the import uses leading-dot package syntax.
func (i Import) IsRelative() bool {
	return i.Level > 0
}

// String returns the import as it would be written in source, without aliases.
func (i Import) String() string {
	module := strings.Repeat(".", i.Level) + i.Path
	if i.Form == FormDirect {
		return "import " + module
	}

	if i.Wildcard {
		return "from " + module + " import *"
	}

	names := make([]string, len(i.Names))
	for idx, n := range i.Names {
		names[idx] = n.Name
	}
	return "from " + module + " import " + strings.Join(names, ", ")
}

// ParsePythonImports parses Python source code and extracts imports in source order.
// Files whose syntax tree contains errors are rejected with ErrSyntax.
func ParsePythonImports(sourceCode []byte) ([]Import, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Python code: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root)
	}

	return extractImportsFromTree(root, sourceCode), nil
}

func syntaxError(root *sitter.Node) error {
	if bad := firstErrorNode(root); bad != nil {
		return fmt.Errorf("%w at line %d", ErrSyntax, bad.StartPoint().Row+1)
	}
	return ErrSyntax
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

// extractImportsFromTree walks the AST and extracts imports.
func extractImportsFromTree(rootNode *sitter.Node, sourceCode []byte) []Import {
	var imports []Import

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Type() {
		case "import_statement":
			imports = append(imports, extractImportStatement(n, sourceCode)...)
			return
		case "import_from_statement", "future_import_statement":
			if imp, ok := extractImportFromStatement(n, sourceCode); ok {
				imports = append(imports, imp)
			}
			return
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(rootNode)
	return imports
}

func extractImportStatement(node *sitter.Node, sourceCode []byte) []Import {
	line := int(node.StartPoint().Row) + 1

	var imports []Import
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		name, alias := extractNameAndAlias(child, sourceCode)
		if name == "" {
			continue
		}
		imports = append(imports, Import{
			Form:  FormDirect,
			Path:  name,
			Alias: alias,
			Line:  line,
		})
	}
	return imports
}

func extractImportFromStatement(node *sitter.Node, sourceCode []byte) (Import, bool) {
	imp := Import{
		Form: FormFrom,
		Line: int(node.StartPoint().Row) + 1,
	}

	if node.Type() == "future_import_statement" {
		imp.Path = "__future__"
	}

	seenModule := node.Type() == "future_import_statement"
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "from", "import", "(", ")", ",", "__future__":
			continue
		case "wildcard_import":
			imp.Wildcard = true
			continue
		}

		if !seenModule {
			switch child.Type() {
			case "relative_import":
				imp.Level, imp.Path = splitRelativeImport(child.Content(sourceCode))
				seenModule = true
			case "dotted_name":
				imp.Path = normalizeDottedName(child.Content(sourceCode))
				seenModule = true
			}
			continue
		}

		name, alias := extractNameAndAlias(child, sourceCode)
		if name != "" {
			imp.Names = append(imp.Names, ImportedName{Name: name, Alias: alias})
		}
	}

	if !seenModule || (imp.Path == "" && imp.Level == 0) {
		return Import{}, false
	}
	return imp, true
}

func extractNameAndAlias(node *sitter.Node, sourceCode []byte) (string, string) {
	switch node.Type() {
	case "dotted_name", "identifier":
		return normalizeDottedName(node.Content(sourceCode)), ""
	case "aliased_import":
		var name, alias string
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			switch child.Type() {
			case "dotted_name":
				name = normalizeDottedName(child.Content(sourceCode))
			case "identifier":
				if name == "" {
					name = normalizeDottedName(child.Content(sourceCode))
				} else {
					alias = child.Content(sourceCode)
				}
			}
		}
		return name, alias
	}
	return "", ""
}

// splitRelativeImport splits "..pkg.mod" into (2, "pkg.mod").
func splitRelativeImport(content string) (int, string) {
	content = strings.TrimSpace(content)
	level := 0
	for level < len(content) && content[level] == '.' {
		level++
	}
	return level, normalizeDottedName(content[level:])
}

// normalizeDottedName removes whitespace and line continuations inside a dotted name.
func normalizeDottedName(content string) string {
	return strings.Join(strings.FieldsFunc(content, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\\'
	}), "")
}
