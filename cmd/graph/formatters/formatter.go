package formatters

import "github.com/LegacyCodeHQ/importviz/depgraph"

// RenderOptions contains optional parameters for rendering dependency graphs.
type RenderOptions struct {
	// Label is an optional title for the graph, typically the project name.
	Label string
	// Root is the absolute project root. Paths above it are ignored when classifying files.
	Root string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts a dependency graph to a formatted string representation.
	Format(g *depgraph.DependencyGraph, opts RenderOptions) (string, error)
	// GenerateURL returns a shareable visualization URL for output, if the format supports one.
	GenerateURL(output string) (string, bool)
}
