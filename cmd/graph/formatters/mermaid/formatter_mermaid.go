package mermaid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/importviz/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/importviz/depgraph"
)

// Formatter formats dependency graphs as Mermaid.js flowcharts.
type Formatter struct{}

// Format converts the dependency graph to Mermaid.js flowchart format. Node ids are
// positional (n0, n1, ...) because dotted names are not valid Mermaid ids.
func (f *Formatter) Format(g *depgraph.DependencyGraph, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder

	// Add title if label provided
	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}

	sb.WriteString("flowchart LR\n")

	modules := g.Modules()
	ids := make(map[string]string, len(modules))
	var external, packages []string
	for i, m := range modules {
		id := fmt.Sprintf("n%d", i)
		ids[m.Name] = id
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, escapeLabel(m.Name)))

		switch m.Kind {
		case depgraph.KindExternal:
			external = append(external, id)
		case depgraph.KindInternalPackage:
			packages = append(packages, id)
		}
	}

	for _, e := range g.Edges() {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[e.From], ids[e.To]))
	}

	if len(external) > 0 {
		sb.WriteString("    classDef external stroke:#00f,color:#00f\n")
		sb.WriteString(fmt.Sprintf("    class %s external\n", strings.Join(external, ",")))
	}
	if len(packages) > 0 {
		sb.WriteString("    classDef package stroke-dasharray:5 5\n")
		sb.WriteString(fmt.Sprintf("    class %s package\n", strings.Join(packages, ",")))
	}

	return sb.String(), nil
}

func escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "#quot;")
}

// GenerateURL creates a Mermaid Live Editor URL with the diagram embedded.
func (f *Formatter) GenerateURL(output string) (string, bool) {
	state := map[string]any{
		"code":    output,
		"mermaid": map[string]string{"theme": "default"},
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", false
	}
	encoded := base64.URLEncoding.EncodeToString(data)
	return fmt.Sprintf("https://mermaid.live/edit#base64:%s", encoded), true
}
