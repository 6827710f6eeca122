package depgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
)

// SourceModule is a scanned file and the dotted name it is imported by.
type SourceModule struct {
	Name string
	File string
}

// ModuleCandidates maps every internal module and package name to its kind.
type ModuleCandidates map[string]ModuleKind

// BuildModuleCandidates derives the internal namespace from the scanned files.
// When two files claim the same name (pkg.py and pkg/__init__.py) the first one wins
// and the later file is returned in duplicates.
func BuildModuleCandidates(root string, files []string) (ModuleCandidates, []SourceModule, []string, error) {
	candidates := make(ModuleCandidates)
	var sources []SourceModule
	var duplicates []string

	for _, file := range files {
		name, err := python.ModuleName(root, file)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to name module: %w", err)
		}

		if candidates[name] == KindInternalFile {
			duplicates = append(duplicates, file)
			continue
		}
		candidates[name] = KindInternalFile
		sources = append(sources, SourceModule{Name: name, File: file})

		for _, parent := range python.ParentModules(name) {
			if _, ok := candidates[parent]; !ok {
				candidates[parent] = KindInternalPackage
			}
		}
	}

	return candidates, sources, duplicates, nil
}

// Names returns the candidate names sorted.
func (c ModuleCandidates) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kind classifies a dotted name: its candidate kind if known, otherwise by the nearest
// ancestor that is a candidate. A package ancestor makes the name internal-package, a
// plain module file ancestor or no ancestor at all makes it external.
func (c ModuleCandidates) Kind(name string) ModuleKind {
	if kind, ok := c[name]; ok {
		return kind
	}

	parents := python.ParentModules(name)
	for i := len(parents) - 1; i >= 0; i-- {
		kind, ok := c[parents[i]]
		if !ok {
			continue
		}
		if kind == KindInternalPackage || c.isPackageFile(parents[i]) {
			return KindInternalPackage
		}
		return KindExternal
	}
	return KindExternal
}

// isPackageFile reports whether name is a file module that also has children,
// which is the case for a package defined by __init__.py.
func (c ModuleCandidates) isPackageFile(name string) bool {
	if c[name] != KindInternalFile {
		return false
	}
	prefix := name + "."
	for candidate := range c {
		if strings.HasPrefix(candidate, prefix) {
			return true
		}
	}
	return false
}

// Target is a resolved dependency.
type Target struct {
	Name string
	Kind ModuleKind
}

// Resolver turns raw import declarations into dependency targets. It performs no I/O.
type Resolver struct {
	Candidates ModuleCandidates
	// IncludeStdlib keeps standard library imports as external targets instead of dropping them.
	IncludeStdlib bool
}

// Resolve returns the targets an import depends on, deduplicated in declaration order.
// Relative imports fail with ErrUnsupportedRelativeImport.
//
// A from-form name resolves to base.name when that is an internal candidate and to the
// base path otherwise. A wildcard resolves to the base path.
func (r Resolver) Resolve(imp python.Import) ([]Target, error) {
	if imp.IsRelative() {
		return nil, ErrUnsupportedRelativeImport
	}

	var names []string
	switch imp.Form {
	case python.FormDirect:
		names = []string{imp.Path}
	case python.FormFrom:
		if imp.Wildcard || len(imp.Names) == 0 {
			names = []string{imp.Path}
			break
		}
		for _, n := range imp.Names {
			qualified := imp.Path + "." + n.Name
			if _, ok := r.Candidates[qualified]; ok {
				names = append(names, qualified)
			} else {
				names = append(names, imp.Path)
			}
		}
	default:
		return nil, fmt.Errorf("unknown import form %d", imp.Form)
	}

	seen := make(map[string]bool, len(names))
	targets := make([]Target, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		kind := r.Candidates.Kind(name)
		if kind == KindExternal && !r.IncludeStdlib && python.IsStdlibModule(name) {
			continue
		}
		targets = append(targets, Target{Name: name, Kind: kind})
	}
	return targets, nil
}
