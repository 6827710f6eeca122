package python

import (
	"path/filepath"
	"strings"
)

// IsTestFile reports whether the given Python path holds tests or pytest fixtures.
// relPath is relative to the project root so that directories above the root
// never make a file look like a test.
func IsTestFile(relPath string) bool {
	fileName := filepath.Base(relPath)
	if filepath.Ext(fileName) != SourceExtension {
		return false
	}

	switch {
	case fileName == "conftest.py", fileName == "tests.py":
		return true
	case strings.HasPrefix(fileName, "test_"), strings.HasSuffix(fileName, "_test.py"):
		return true
	}

	dir := "/" + strings.Trim(filepath.ToSlash(filepath.Dir(relPath)), "/") + "/"
	return strings.Contains(dir, "/tests/") || strings.Contains(dir, "/test/")
}

// IsTestFileUnder is IsTestFile for filePath relativized against root. An empty root
// or a file outside it checks filePath as given.
func IsTestFileUnder(root, filePath string) bool {
	if root != "" {
		if rel, err := filepath.Rel(root, filePath); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			filePath = rel
		}
	}
	return IsTestFile(filePath)
}
