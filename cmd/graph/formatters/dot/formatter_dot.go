package dot

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/LegacyCodeHQ/importviz/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
)

const defaultGraphName = "dependencies"

// ExternalColor is the stroke color of external modules and the edges into them.
const ExternalColor = "blue"

// Formatter formats dependency graphs as Graphviz DOT.
type Formatter struct{}

// Format converts the dependency graph to Graphviz DOT format. Every module gets a
// node declaration and every dependency an edge, both in name order.
func (f *Formatter) Format(g *depgraph.DependencyGraph, opts formatters.RenderOptions) (string, error) {
	graphName := defaultGraphName
	if opts.Label != "" {
		graphName = opts.Label
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("digraph %s {\n", Quote(graphName)))
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	// Add label if provided
	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%s;\n", Quote(opts.Label)))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}

	modules := g.Modules()
	kinds := make(map[string]depgraph.ModuleKind, len(modules))
	if len(modules) > 0 {
		sb.WriteString("\n")
	}
	for _, m := range modules {
		kinds[m.Name] = m.Kind
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", Quote(m.Name), nodeAttributes(m, opts.Root)))
	}

	edges := g.Edges()
	if len(edges) > 0 {
		sb.WriteString("\n")
	}
	for _, e := range edges {
		if kinds[e.To] == depgraph.KindExternal {
			sb.WriteString(fmt.Sprintf("  %s -> %s [color=%s];\n", Quote(e.From), Quote(e.To), ExternalColor))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s -> %s;\n", Quote(e.From), Quote(e.To)))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func nodeAttributes(m depgraph.Module, root string) string {
	switch m.Kind {
	case depgraph.KindExternal:
		return fmt.Sprintf("color=%s, fontcolor=%s", ExternalColor, ExternalColor)
	case depgraph.KindInternalPackage:
		return `style="filled,dashed", fillcolor=white`
	}

	// Test files are always light green
	if m.File != "" && python.IsTestFileUnder(root, m.File) {
		return "style=filled, fillcolor=lightgreen"
	}
	return "style=filled, fillcolor=white"
}

// Quote returns id as a double-quoted DOT identifier.
func Quote(id string) string {
	var sb strings.Builder
	sb.Grow(len(id) + 2)
	sb.WriteByte('"')
	for _, r := range id {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// GenerateURL creates a GraphvizOnline URL with the DOT graph embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	encoded := url.PathEscape(output)
	return fmt.Sprintf("https://dreampuf.github.io/GraphvizOnline/?engine=dot#%s", encoded), true
}
