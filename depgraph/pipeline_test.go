package depgraph_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleProject is the sample project from the README.
var exampleProject = map[string]string{
	"hello.py": "import module_a\n",
	"main.py": `""" Test project for import-visualizer. """

import sys

# module_c imports both module_a and module_b
from path.to.module_c import MyClass


def main():
    my_instance = MyClass()
    my_instance.method()


if __name__ == "__main__":
    main()
`,
	"module_a.py": "def a():\n    return 'a'\n",
	"module_b.py": "def b():\n    return 'b'\n",
	"module_d.py": "# not imported anywhere\n",
	"path/to/module_c.py": `import module_a
from module_b import b


class MyClass:
    def method(self):
        return module_a.a() + b()
`,
}

func dependencyMap(g *depgraph.DependencyGraph) map[string][]string {
	deps := make(map[string][]string)
	for _, m := range g.InternalModules() {
		deps[m.Name] = m.Dependencies
	}
	return deps
}

func TestBuildDependencyGraph_ExampleProject(t *testing.T) {
	root := writeProject(t, exampleProject)

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, map[string][]string{
		"hello":            {"module_a"},
		"main":             {"path.to.module_c"},
		"module_a":         {},
		"module_b":         {},
		"module_d":         {},
		"path":             {},
		"path.to":          {},
		"path.to.module_c": {"module_a", "module_b"},
	}, dependencyMap(result.Graph))

	pathTo, ok := result.Graph.Module("path.to")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindInternalPackage, pathTo.Kind)

	_, ok = result.Graph.Module("sys")
	assert.False(t, ok, "standard library imports are dropped by default")

	var size int64
	for _, content := range exampleProject {
		size += int64(len(content))
	}
	assert.Equal(t, size, result.Bytes)
}

func TestBuildDependencyGraph_IncludeStdlib(t *testing.T) {
	root := writeProject(t, exampleProject)

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{IncludeStdlib: true})

	require.NoError(t, err)
	main, ok := result.Graph.Module("main")
	require.True(t, ok)
	assert.Equal(t, []string{"path.to.module_c", "sys"}, main.Dependencies)

	sys, ok := result.Graph.Module("sys")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindExternal, sys.Kind)
}

func TestBuildDependencyGraph_ExternalModulesAreLeaves(t *testing.T) {
	root := writeProject(t, map[string]string{
		"app.py": "import requests\nfrom flask import Flask\nimport requests.adapters as ra\n",
	})

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{})

	require.NoError(t, err)
	app, ok := result.Graph.Module("app")
	require.True(t, ok)
	assert.Equal(t, []string{"flask", "requests", "requests.adapters"}, app.Dependencies)

	for _, name := range []string{"flask", "requests", "requests.adapters"} {
		m, ok := result.Graph.Module(name)
		require.True(t, ok, name)
		assert.Equal(t, depgraph.KindExternal, m.Kind)
		assert.Empty(t, m.Dependencies)
	}
	assert.Equal(t, []string{"app"}, dependencyNames(result.Graph.InternalModules()))
}

func TestBuildDependencyGraph_ParseErrorSkipsOnlyThatFile(t *testing.T) {
	root := writeProject(t, map[string]string{
		"good.py":   "import helper\n",
		"helper.py": "",
		"broken.py": "import helper\n\ndef broken(:\n    pass\n",
	})

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{})

	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	diag := result.Diagnostics[0]
	assert.Equal(t, depgraph.DiagnosticParseError, diag.Kind)
	assert.Equal(t, filepath.Join(result.Root, "broken.py"), diag.File)

	var parseErr *depgraph.FileParseError
	require.True(t, errors.As(diag.Err, &parseErr))
	assert.ErrorIs(t, parseErr, python.ErrSyntax)

	assert.Equal(t, map[string][]string{
		"broken": {},
		"good":   {"helper"},
		"helper": {},
	}, dependencyMap(result.Graph))
}

func TestBuildDependencyGraph_RelativeImportsProduceOneDiagnosticEach(t *testing.T) {
	root := writeProject(t, map[string]string{
		"pkg/__init__.py": "",
		"pkg/a.py":        "from . import b\nfrom ..outer import thing\nimport pkg.b\n",
		"pkg/b.py":        "from .a import x\n",
	})

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{})

	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 3)
	for _, diag := range result.Diagnostics {
		assert.Equal(t, depgraph.DiagnosticUnsupportedRelative, diag.Kind)
		assert.ErrorIs(t, diag.Err, depgraph.ErrUnsupportedRelativeImport)
	}

	var warning *depgraph.UnsupportedRelativeImportWarning
	require.True(t, errors.As(result.Diagnostics[1].Err, &warning))
	assert.Equal(t, 2, warning.Line)
	assert.Equal(t, "from ..outer import thing", warning.Import)

	assert.Equal(t, []depgraph.Edge{{From: "pkg.a", To: "pkg.b"}}, result.Graph.Edges())
}

func TestBuildDependencyGraph_CyclesRender(t *testing.T) {
	root := writeProject(t, map[string]string{
		"x.py": "import y\n",
		"y.py": "import x\n",
	})

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{})

	require.NoError(t, err)
	assert.Equal(t, []depgraph.Edge{{From: "x", To: "y"}, {From: "y", To: "x"}}, result.Graph.Edges())
}

func TestBuildDependencyGraph_SelfImportDropped(t *testing.T) {
	root := writeProject(t, map[string]string{
		"pkg/__init__.py": "from pkg import VERSION\n",
		"pkg/core.py":     "from pkg import core\n",
	})

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Graph.Edges())
}

func TestBuildDependencyGraph_OutputIndependentOfWorkerCount(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["pkg/"+name+".py"] = "import pkg.a\nimport pkg.h\nimport requests\n"
	}
	root := writeProject(t, files)

	serial, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{Workers: 1})
	require.NoError(t, err)
	parallel, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Graph.Modules(), parallel.Graph.Modules())
	assert.Equal(t, serial.Graph.Edges(), parallel.Graph.Edges())
}

func TestBuildDependencyGraph_InvalidRoot(t *testing.T) {
	_, err := depgraph.BuildDependencyGraph(context.Background(), filepath.Join(t.TempDir(), "missing"), depgraph.BuildOptions{})

	var rootErr *depgraph.InvalidRootError
	assert.True(t, errors.As(err, &rootErr))
}

func TestBuildDependencyGraph_CancelledContext(t *testing.T) {
	root := writeProject(t, exampleProject)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := depgraph.BuildDependencyGraph(ctx, root, depgraph.BuildOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestBuildDependencyGraph_UnreadableFileIsDiagnosed(t *testing.T) {
	root := writeProject(t, map[string]string{"a.py": "import b\n", "b.py": ""})
	reader := func(path string) ([]byte, error) {
		if filepath.Base(path) == "a.py" {
			return nil, errors.New("permission denied")
		}
		return []byte(""), nil
	}

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{ContentReader: reader})

	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, depgraph.DiagnosticParseError, result.Diagnostics[0].Kind)
	assert.Empty(t, result.Graph.Edges())
}

func TestBuildDependencyGraph_ShadowedModuleFileIsLogged(t *testing.T) {
	root := writeProject(t, map[string]string{
		"pkg.py":          "import requests\n",
		"pkg/__init__.py": "import module_a\n",
		"module_a.py":     "",
	})
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{Logger: logger})

	require.NoError(t, err)
	assert.Equal(t, []string{"module_a"}, result.Graph.Dependencies("pkg"))
	assert.Contains(t, logs.String(), "skipping module file shadowed by a package of the same name")
	assert.Contains(t, logs.String(), filepath.Join(root, "pkg.py"))
}

func dependencyNames(modules []depgraph.Module) []string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	return names
}
