package depgraph

// ModuleKind classifies a node of the dependency graph.
type ModuleKind int

const (
	// KindExternal is a module that cannot be resolved under the project root.
	KindExternal ModuleKind = iota
	// KindInternalPackage is an intermediate dotted segment with no source file of its own.
	KindInternalPackage
	// KindInternalFile resolves to a source file under the project root.
	KindInternalFile
)

func (k ModuleKind) String() string {
	switch k {
	case KindExternal:
		return "external"
	case KindInternalPackage:
		return "internal-package"
	case KindInternalFile:
		return "internal-file"
	default:
		return "unknown"
	}
}

// IsInternal reports whether the kind lives under the project root.
func (k ModuleKind) IsInternal() bool {
	return k == KindInternalFile || k == KindInternalPackage
}

// Module is a node in the dependency graph.
type Module struct {
	Name string
	Kind ModuleKind
	// File is the absolute source path of an internal-file module.
	File string
	// Dependencies are the qualified names this module imports directly, sorted.
	Dependencies []string
}

// Edge is a directed dependency from an importer to an imported module.
type Edge struct {
	From string
	To   string
}
