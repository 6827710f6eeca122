package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/importviz/depgraph"
)

// JSONFormatter formats dependency graphs as JSON.
type JSONFormatter struct{}

type jsonModule struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	File         string   `json:"file,omitempty"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type jsonGraph struct {
	Label   string       `json:"label,omitempty"`
	Modules []jsonModule `json:"modules"`
	Edges   []jsonEdge   `json:"edges"`
}

// Format converts the dependency graph to indented JSON with sorted modules and edges.
func (f *JSONFormatter) Format(g *depgraph.DependencyGraph, opts RenderOptions) (string, error) {
	doc := jsonGraph{
		Label:   opts.Label,
		Modules: []jsonModule{},
		Edges:   []jsonEdge{},
	}

	modules := g.Modules()
	dependents := make(map[string][]string, len(modules))
	for _, m := range modules {
		for _, dep := range m.Dependencies {
			dependents[dep] = append(dependents[dep], m.Name)
		}
	}

	for _, m := range modules {
		doc.Modules = append(doc.Modules, jsonModule{
			Name:         m.Name,
			Kind:         m.Kind.String(),
			File:         m.File,
			Dependencies: m.Dependencies,
			Dependents:   dependentsOf(dependents, m.Name),
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, jsonEdge{From: e.From, To: e.To})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// dependentsOf returns the importers of name. Lists are built in module name order,
// so they are already sorted.
func dependentsOf(dependents map[string][]string, name string) []string {
	if list := dependents[name]; list != nil {
		return list
	}
	return []string{}
}

// GenerateURL returns false as JSON format does not support URL generation.
func (f *JSONFormatter) GenerateURL(output string) (string, bool) {
	return "", false
}
