package depgraph

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
)

// DefaultExcludedDirs are directory names never descended into.
var DefaultExcludedDirs = []string{
	"venv",
	"env",
	"virtualenv",
	"__pycache__",
	"site-packages",
	"node_modules",
	"build",
	"dist",
}

// ScanOptions controls which directories the scanner skips.
type ScanOptions struct {
	// ExcludedDirs are directory names skipped wherever they appear. Nil means DefaultExcludedDirs.
	ExcludedDirs []string
}

// SkipsDir reports whether directories called name are left out of a scan.
func (o ScanOptions) SkipsDir(name string) bool {
	return isExcludedDir(name, o.excludedSet())
}

func (o ScanOptions) excludedSet() map[string]bool {
	dirs := o.ExcludedDirs
	if dirs == nil {
		dirs = DefaultExcludedDirs
	}
	excluded := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		excluded[dir] = true
	}
	return excluded
}

// ScanSourceFiles validates root and returns a lazy, lexically ordered sequence of the
// absolute paths of Python files beneath it. Hidden and virtual-environment directories
// are skipped. Unreadable entries below the root are ignored.
func ScanSourceFiles(root string, opts ScanOptions) (iter.Seq[string], error) {
	absRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}

	excluded := opts.excludedSet()

	return func(yield func(string) bool) {
		_ = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if d != nil && d.IsDir() && path != absRoot {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != absRoot && isExcludedDir(d.Name(), excluded) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() || filepath.Ext(path) != python.SourceExtension {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

// CollectSourceFiles drains ScanSourceFiles into a slice.
func CollectSourceFiles(root string, opts ScanOptions) ([]string, error) {
	files, err := ScanSourceFiles(root, opts)
	if err != nil {
		return nil, err
	}

	var paths []string
	for path := range files {
		paths = append(paths, path)
	}
	return paths, nil
}

func validateRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &InvalidRootError{Root: root, Err: err}
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return "", &InvalidRootError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return "", &InvalidRootError{Root: root}
	}
	return absRoot, nil
}

// isExcludedDir matches hidden directories, configured names, and names that look like
// virtual environments (containing "venv" or starting with "virt").
func isExcludedDir(name string, excluded map[string]bool) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if excluded[name] {
		return true
	}
	return strings.Contains(name, "venv") || strings.HasPrefix(name, "virt")
}

// ResolveRoot returns the absolute form of root after checking it is a directory.
func ResolveRoot(root string) (string, error) {
	return validateRoot(root)
}
