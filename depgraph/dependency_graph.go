package depgraph

import (
	"errors"
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// DependencyGraph is a registry of modules keyed by qualified name together with
// their direct import edges.
type DependencyGraph struct {
	graph   graphlib.Graph[string, string]
	modules map[string]*Module
}

// NewDependencyGraph creates an empty dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		graph:   graphlib.New(graphlib.StringHash, graphlib.Directed()),
		modules: make(map[string]*Module),
	}
}

// AddModule inserts a module or strengthens the kind of an existing one.
// internal-file outranks internal-package, which outranks external.
func (g *DependencyGraph) AddModule(name string, kind ModuleKind, file string) error {
	if name == "" {
		return fmt.Errorf("module name cannot be empty")
	}

	if existing, ok := g.modules[name]; ok {
		if kind > existing.Kind {
			existing.Kind = kind
		}
		if existing.File == "" {
			existing.File = file
		}
		return nil
	}

	if err := g.graph.AddVertex(name); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add module %s: %w", name, err)
	}
	g.modules[name] = &Module{Name: name, Kind: kind, File: file}
	return nil
}

// AddDependency records that from imports to. Both modules must already exist.
// Self-edges are ignored and duplicate edges collapse to one.
func (g *DependencyGraph) AddDependency(from, to string) error {
	if from == to {
		return nil
	}

	err := g.graph.AddEdge(from, to)
	if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return fmt.Errorf("failed to add dependency %s -> %s: %w", from, to, err)
	}
	return nil
}

// Len returns the number of modules.
func (g *DependencyGraph) Len() int {
	return len(g.modules)
}

// Module returns a snapshot of the named module.
func (g *DependencyGraph) Module(name string) (Module, bool) {
	m, ok := g.modules[name]
	if !ok {
		return Module{}, false
	}

	snapshot := *m
	snapshot.Dependencies = g.Dependencies(name)
	return snapshot, true
}

// Dependencies returns the sorted direct dependencies of name.
func (g *DependencyGraph) Dependencies(name string) []string {
	adjacency, err := g.graph.AdjacencyMap()
	if err != nil {
		return []string{}
	}
	return sortedKeys(adjacency[name])
}

// Dependents returns the sorted modules that import name directly.
func (g *DependencyGraph) Dependents(name string) []string {
	predecessors, err := g.graph.PredecessorMap()
	if err != nil {
		return []string{}
	}
	return sortedKeys(predecessors[name])
}

// Modules returns every module sorted by name.
func (g *DependencyGraph) Modules() []Module {
	adjacency, err := g.graph.AdjacencyMap()
	if err != nil {
		adjacency = nil
	}

	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}
	sort.Strings(names)

	modules := make([]Module, 0, len(names))
	for _, name := range names {
		m := *g.modules[name]
		m.Dependencies = sortedKeys(adjacency[name])
		modules = append(modules, m)
	}
	return modules
}

// InternalModules returns the internal-file and internal-package modules sorted by name.
func (g *DependencyGraph) InternalModules() []Module {
	var internal []Module
	for _, m := range g.Modules() {
		if m.Kind.IsInternal() {
			internal = append(internal, m)
		}
	}
	return internal
}

// Edges returns every dependency edge sorted by importer, then imported module.
func (g *DependencyGraph) Edges() []Edge {
	var edges []Edge
	for _, m := range g.Modules() {
		for _, dep := range m.Dependencies {
			edges = append(edges, Edge{From: m.Name, To: dep})
		}
	}
	return edges
}

func sortedKeys(m map[string]graphlib.Edge[string]) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
