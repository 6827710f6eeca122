package depgraph

import (
	"fmt"

	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
)

// Builder folds per-file resolution results into a DependencyGraph.
// It is not safe for concurrent use; callers serialize updates through one goroutine.
type Builder struct {
	graph *DependencyGraph
}

// NewBuilder creates a builder over an empty graph.
func NewBuilder() *Builder {
	return &Builder{graph: NewDependencyGraph()}
}

// AddSourceModule registers a scanned internal file and its ancestor packages.
func (b *Builder) AddSourceModule(name, file string) error {
	if err := b.graph.AddModule(name, KindInternalFile, file); err != nil {
		return err
	}
	return b.addAncestors(name)
}

// AddImports records the resolved targets of importer, which must already be registered.
func (b *Builder) AddImports(importer string, targets []Target) error {
	if _, ok := b.graph.modules[importer]; !ok {
		return fmt.Errorf("unknown importer %s", importer)
	}

	for _, target := range targets {
		if target.Name == importer {
			continue
		}

		if err := b.graph.AddModule(target.Name, target.Kind, ""); err != nil {
			return err
		}
		if target.Kind.IsInternal() {
			if err := b.addAncestors(target.Name); err != nil {
				return err
			}
		}

		if err := b.graph.AddDependency(importer, target.Name); err != nil {
			return err
		}
	}
	return nil
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *DependencyGraph {
	return b.graph
}

func (b *Builder) addAncestors(name string) error {
	for _, parent := range python.ParentModules(name) {
		if err := b.graph.AddModule(parent, KindInternalPackage, ""); err != nil {
			return err
		}
	}
	return nil
}

// FileResult is the parse-and-resolve outcome of one source module.
type FileResult struct {
	Module      SourceModule
	Targets     []Target
	Diagnostics []Diagnostic
	Bytes       int
}

// BuildGraphFromResults folds results in order. Folding the same results again
// produces an identical graph.
func BuildGraphFromResults(results []FileResult) (*DependencyGraph, error) {
	builder := NewBuilder()

	for _, result := range results {
		if err := builder.AddSourceModule(result.Module.Name, result.Module.File); err != nil {
			return nil, fmt.Errorf("failed to add module %s: %w", result.Module.Name, err)
		}
	}

	for _, result := range results {
		if err := builder.AddImports(result.Module.Name, result.Targets); err != nil {
			return nil, fmt.Errorf("failed to add imports of %s: %w", result.Module.Name, err)
		}
	}

	return builder.Graph(), nil
}
