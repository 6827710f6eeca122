package python

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceExtension is the extension of Python source files.
const SourceExtension = ".py"

const packageInitModule = "__init__"

// ModuleName returns the dotted name a script in root would use to import filePath.
// Both paths must be absolute. Package files (__init__.py) name their directory,
// except at the root itself where the name stays "__init__".
func ModuleName(root, filePath string) (string, error) {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", filePath, err)
	}
	if rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return "", fmt.Errorf("%s is outside %s", filePath, root)
	}
	if filepath.Ext(rel) != SourceExtension {
		return "", fmt.Errorf("%s is not a Python source file", filePath)
	}

	parts := strings.Split(filepath.ToSlash(strings.TrimSuffix(rel, SourceExtension)), "/")
	if len(parts) > 1 && parts[len(parts)-1] == packageInitModule {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "."), nil
}

// IsPackageInit reports whether filePath is a package __init__.py.
func IsPackageInit(filePath string) bool {
	return filepath.Base(filePath) == packageInitModule+SourceExtension
}

// ParentModules returns the proper ancestors of a dotted name, outermost first.
// ParentModules("a.b.c") returns ["a", "a.b"].
func ParentModules(name string) []string {
	var parents []string
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			parents = append(parents, name[:i])
		}
	}
	return parents
}

// TopLevelModule returns the first segment of a dotted name.
func TopLevelModule(name string) string {
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		return name[:idx]
	}
	return name
}
