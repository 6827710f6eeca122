package depgraph_test

import (
	"testing"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyGraph_AddModuleStrengthensKind(t *testing.T) {
	g := depgraph.NewDependencyGraph()

	require.NoError(t, g.AddModule("pkg", depgraph.KindInternalPackage, ""))
	require.NoError(t, g.AddModule("pkg", depgraph.KindInternalFile, "/project/pkg/__init__.py"))
	require.NoError(t, g.AddModule("pkg", depgraph.KindInternalPackage, ""))

	m, ok := g.Module("pkg")
	require.True(t, ok)
	assert.Equal(t, depgraph.KindInternalFile, m.Kind)
	assert.Equal(t, "/project/pkg/__init__.py", m.File)
	assert.Equal(t, 1, g.Len())
}

func TestDependencyGraph_AddModuleRejectsEmptyName(t *testing.T) {
	g := depgraph.NewDependencyGraph()

	assert.Error(t, g.AddModule("", depgraph.KindExternal, ""))
}

func TestDependencyGraph_DuplicateEdgesCollapse(t *testing.T) {
	g := depgraph.NewDependencyGraph()
	require.NoError(t, g.AddModule("a", depgraph.KindInternalFile, "/p/a.py"))
	require.NoError(t, g.AddModule("b", depgraph.KindInternalFile, "/p/b.py"))

	require.NoError(t, g.AddDependency("a", "b"))
	require.NoError(t, g.AddDependency("a", "b"))

	assert.Equal(t, []depgraph.Edge{{From: "a", To: "b"}}, g.Edges())
}

func TestDependencyGraph_SelfEdgeIgnored(t *testing.T) {
	g := depgraph.NewDependencyGraph()
	require.NoError(t, g.AddModule("a", depgraph.KindInternalFile, "/p/a.py"))

	require.NoError(t, g.AddDependency("a", "a"))

	assert.Empty(t, g.Edges())
	assert.Empty(t, g.Dependencies("a"))
}

func TestDependencyGraph_AddDependencyRequiresModules(t *testing.T) {
	g := depgraph.NewDependencyGraph()
	require.NoError(t, g.AddModule("a", depgraph.KindInternalFile, "/p/a.py"))

	assert.Error(t, g.AddDependency("a", "missing"))
}

func TestDependencyGraph_CyclesAreLegal(t *testing.T) {
	g := depgraph.NewDependencyGraph()
	require.NoError(t, g.AddModule("x", depgraph.KindInternalFile, "/p/x.py"))
	require.NoError(t, g.AddModule("y", depgraph.KindInternalFile, "/p/y.py"))

	require.NoError(t, g.AddDependency("x", "y"))
	require.NoError(t, g.AddDependency("y", "x"))

	assert.Equal(t, []depgraph.Edge{{From: "x", To: "y"}, {From: "y", To: "x"}}, g.Edges())
	assert.Equal(t, []string{"y"}, g.Dependents("x"))
}

func TestDependencyGraph_ModulesAreSorted(t *testing.T) {
	g := depgraph.NewDependencyGraph()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, g.AddModule(name, depgraph.KindInternalFile, ""))
	}
	require.NoError(t, g.AddModule("requests", depgraph.KindExternal, ""))
	require.NoError(t, g.AddDependency("alpha", "zeta"))
	require.NoError(t, g.AddDependency("alpha", "requests"))
	require.NoError(t, g.AddDependency("alpha", "mid"))

	var names []string
	for _, m := range g.Modules() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "requests", "zeta"}, names)

	alpha, ok := g.Module("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"mid", "requests", "zeta"}, alpha.Dependencies)

	var internal []string
	for _, m := range g.InternalModules() {
		internal = append(internal, m.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, internal)
}

func TestModuleKind_String(t *testing.T) {
	assert.Equal(t, "internal-file", depgraph.KindInternalFile.String())
	assert.Equal(t, "internal-package", depgraph.KindInternalPackage.String())
	assert.Equal(t, "external", depgraph.KindExternal.String())
	assert.True(t, depgraph.KindInternalPackage.IsInternal())
	assert.False(t, depgraph.KindExternal.IsInternal())
}
