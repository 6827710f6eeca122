package depgraph

import (
	"errors"
	"fmt"
)

// ErrUnsupportedRelativeImport is returned by the resolver for leading-dot imports.
var ErrUnsupportedRelativeImport = errors.New("relative imports are not supported")

// InvalidRootError reports that the project root is missing or is not a directory.
// It is the only error that aborts a run.
type InvalidRootError struct {
	Root string
	Err  error
}

func (e *InvalidRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid project root %s: %v", e.Root, e.Err)
	}
	return fmt.Sprintf("invalid project root %s: not a directory", e.Root)
}

func (e *InvalidRootError) Unwrap() error {
	return e.Err
}

// FileParseError reports a source file that was skipped because it could not be parsed.
type FileParseError struct {
	File string
	Err  error
}

func (e *FileParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.File, e.Err)
}

func (e *FileParseError) Unwrap() error {
	return e.Err
}

// UnsupportedRelativeImportWarning reports a relative import left out of the graph.
type UnsupportedRelativeImportWarning struct {
	File   string
	Line   int
	Import string
}

func (e *UnsupportedRelativeImportWarning) Error() string {
	return fmt.Sprintf("%s:%d: unsupported relative import %q was ignored", e.File, e.Line, e.Import)
}

func (e *UnsupportedRelativeImportWarning) Unwrap() error {
	return ErrUnsupportedRelativeImport
}

// DiagnosticKind classifies a recoverable problem found during a run.
type DiagnosticKind int

const (
	DiagnosticParseError DiagnosticKind = iota
	DiagnosticUnsupportedRelative
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticParseError:
		return "parse-error"
	case DiagnosticUnsupportedRelative:
		return "unsupported-relative"
	default:
		return "unknown"
	}
}

// Diagnostic is a recoverable problem attached to one source file.
type Diagnostic struct {
	Kind DiagnosticKind
	File string
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	return d.Err.Error()
}

func newParseDiagnostic(file string, err error) Diagnostic {
	return Diagnostic{
		Kind: DiagnosticParseError,
		File: file,
		Err:  &FileParseError{File: file, Err: err},
	}
}

func newRelativeImportDiagnostic(file string, line int, statement string) Diagnostic {
	return Diagnostic{
		Kind: DiagnosticUnsupportedRelative,
		File: file,
		Line: line,
		Err:  &UnsupportedRelativeImportWarning{File: file, Line: line, Import: statement},
	}
}
