package diaglog

import (
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/fatih/color"
)

// Reporter prints diagnostics one per line, colored by kind.
type Reporter struct {
	w    io.Writer
	warn *color.Color
	fail *color.Color
}

// NewReporter creates a Reporter writing to w. Colors follow the terminal detection of
// fatih/color unless noColor is set.
func NewReporter(w io.Writer, noColor bool) *Reporter {
	r := &Reporter{
		w:    w,
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
	}
	if noColor {
		r.warn.DisableColor()
		r.fail.DisableColor()
	}
	return r
}

// Report writes every diagnostic in order and returns how many were written.
func (r *Reporter) Report(diagnostics []depgraph.Diagnostic) int {
	for _, d := range diagnostics {
		r.report(d)
	}
	return len(diagnostics)
}

func (r *Reporter) report(d depgraph.Diagnostic) {
	switch d.Kind {
	case depgraph.DiagnosticUnsupportedRelative:
		r.warn.Fprint(r.w, "warning: ")
	default:
		r.fail.Fprint(r.w, "error: ")
	}
	fmt.Fprintln(r.w, d.String())
}
