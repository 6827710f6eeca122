package diaglog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/internal/diaglog"
	"github.com/LegacyCodeHQ/importviz/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResult(t *testing.T, files map[string]string) *depgraph.Result {
	t.Helper()

	root := testhelpers.WriteProject(t, files)
	result, err := depgraph.BuildDependencyGraph(context.Background(), root, depgraph.BuildOptions{})
	require.NoError(t, err)
	return result
}

var projectWithDiagnostics = map[string]string{
	"pkg/__init__.py": "",
	"pkg/a.py":        "from . import b\nimport requests\n",
	"pkg/b.py":        "import pkg.a\n",
	"broken.py":       "def broken(:\n",
}

func TestReporter_Report(t *testing.T) {
	result := buildResult(t, projectWithDiagnostics)
	var buf bytes.Buffer

	n := diaglog.NewReporter(&buf, true).Report(result.Diagnostics)

	assert.Equal(t, 2, n)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "error: failed to parse "), lines[0])
	assert.Contains(t, lines[0], "broken.py")
	assert.True(t, strings.HasPrefix(lines[1], "warning: "), lines[1])
	assert.Contains(t, lines[1], `unsupported relative import "from . import b" was ignored`)
}

func TestReporter_NoDiagnostics(t *testing.T) {
	var buf bytes.Buffer

	n := diaglog.NewReporter(&buf, true).Report(nil)

	assert.Zero(t, n)
	assert.Empty(t, buf.String())
}

func TestSummarize(t *testing.T) {
	result := buildResult(t, projectWithDiagnostics)

	s := diaglog.Summarize(result)

	assert.Equal(t, diaglog.Summary{
		Files:           4,
		Bytes:           result.Bytes,
		InternalModules: 4,
		ExternalModules: 1,
		Edges:           2,
		ParseErrors:     1,
		RelativeImports: 1,
	}, s)
}

func TestWriteSummary(t *testing.T) {
	result := buildResult(t, projectWithDiagnostics)
	var buf bytes.Buffer

	require.NoError(t, diaglog.WriteSummary(&buf, result))

	output := buf.String()
	assert.Contains(t, output, "Source files")
	assert.Contains(t, output, "Relative imports ignored")
	assert.Contains(t, output, result.Root)
}

func TestNewLogger(t *testing.T) {
	var quiet, verbose bytes.Buffer

	diaglog.NewLogger(&quiet, false).Debug("scanned source files", "files", 3)
	diaglog.NewLogger(&verbose, true).Debug("scanned source files", "files", 3)

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "msg=\"scanned source files\"")
	assert.Contains(t, verbose.String(), "files=3")
}
