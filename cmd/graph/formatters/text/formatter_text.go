package text

import (
	"strings"

	"github.com/LegacyCodeHQ/importviz/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/importviz/depgraph"
)

// Header opens every listing.
const Header = "Module dependencies:"

const dependencyIndent = "    "

// Formatter renders the one-level dependency listing of internal modules.
type Formatter struct{}

// Format lists every internal module in name order, each followed by its indented,
// sorted direct dependencies. Blocks are separated by blank lines; externals only
// appear nested under their importers.
func (f *Formatter) Format(g *depgraph.DependencyGraph, _ formatters.RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n")

	for _, m := range g.InternalModules() {
		sb.WriteString("\n")
		sb.WriteString(m.Name)
		sb.WriteString("\n")
		for _, dep := range m.Dependencies {
			sb.WriteString(dependencyIndent)
			sb.WriteString(dep)
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// GenerateURL returns false as the text listing has no visualization URL.
func (f *Formatter) GenerateURL(string) (string, bool) {
	return "", false
}
