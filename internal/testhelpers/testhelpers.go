// Package testhelpers holds fixtures shared by formatter and command tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TextGoldie creates a goldie instance for text listing tests
func TextGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".gold.txt"))
}

// DotGoldie creates a goldie instance for DOT output tests
func DotGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".gold.dot"))
}

// ExampleProjectFiles is the README sample project:
// main imports path.to.module_c, which imports module_a and module_b.
var ExampleProjectFiles = map[string]string{
	"hello.py": "import module_a\n",
	"main.py": `import sys

# module_c imports both module_a and module_b
from path.to.module_c import MyClass


def main():
    my_instance = MyClass()
    my_instance.method()
`,
	"module_a.py":         "",
	"module_b.py":         "",
	"module_d.py":         "",
	"path/to/module_c.py": "import module_a\nfrom module_b import *\n\n\nclass MyClass:\n    pass\n",
}

// WriteProject creates files (relative slash paths) under a temporary root.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func fileResult(name, file string, targets ...depgraph.Target) depgraph.FileResult {
	return depgraph.FileResult{
		Module:  depgraph.SourceModule{Name: name, File: file},
		Targets: targets,
	}
}

func internalFile(name string) depgraph.Target {
	return depgraph.Target{Name: name, Kind: depgraph.KindInternalFile}
}

// ExampleProjectGraph returns the graph of ExampleProjectFiles without touching the filesystem.
func ExampleProjectGraph(t *testing.T) *depgraph.DependencyGraph {
	t.Helper()

	g, err := depgraph.BuildGraphFromResults([]depgraph.FileResult{
		fileResult("hello", "/project/hello.py", internalFile("module_a")),
		fileResult("main", "/project/main.py", internalFile("path.to.module_c")),
		fileResult("module_a", "/project/module_a.py"),
		fileResult("module_b", "/project/module_b.py"),
		fileResult("module_d", "/project/module_d.py"),
		fileResult("path.to.module_c", "/project/path/to/module_c.py", internalFile("module_a"), internalFile("module_b")),
	})
	require.NoError(t, err)
	return g
}

// MixedGraph returns a graph with packages, an external module and a test module.
func MixedGraph(t *testing.T) *depgraph.DependencyGraph {
	t.Helper()

	g, err := depgraph.BuildGraphFromResults([]depgraph.FileResult{
		fileResult("app.main", "/project/app/main.py",
			internalFile("app.util"),
			depgraph.Target{Name: "requests", Kind: depgraph.KindExternal}),
		fileResult("app.util", "/project/app/util.py"),
		fileResult("tests.test_main", "/project/tests/test_main.py", internalFile("app.main")),
	})
	require.NoError(t, err)
	return g
}

// CyclicGraph returns two modules importing each other.
func CyclicGraph(t *testing.T) *depgraph.DependencyGraph {
	t.Helper()

	g, err := depgraph.BuildGraphFromResults([]depgraph.FileResult{
		fileResult("x", "/project/x.py", internalFile("y")),
		fileResult("y", "/project/y.py", internalFile("x")),
	})
	require.NoError(t, err)
	return g
}

// EmptyGraph returns a graph without modules.
func EmptyGraph() *depgraph.DependencyGraph {
	return depgraph.NewDependencyGraph()
}
