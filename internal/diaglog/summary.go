package diaglog

import (
	"fmt"
	"io"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary counts what a run produced.
type Summary struct {
	Files           int
	Bytes           int64
	InternalModules int
	ExternalModules int
	Edges           int
	ParseErrors     int
	RelativeImports int
}

// Summarize counts the modules, edges and diagnostics of result.
func Summarize(result *depgraph.Result) Summary {
	s := Summary{
		Files: len(result.Files),
		Bytes: result.Bytes,
		Edges: len(result.Graph.Edges()),
	}
	for _, m := range result.Graph.Modules() {
		if m.Kind.IsInternal() {
			s.InternalModules++
		} else {
			s.ExternalModules++
		}
	}
	for _, d := range result.Diagnostics {
		switch d.Kind {
		case depgraph.DiagnosticUnsupportedRelative:
			s.RelativeImports++
		default:
			s.ParseErrors++
		}
	}
	return s
}

// WriteSummary renders the summary of result as a table.
func WriteSummary(w io.Writer, result *depgraph.Result) error {
	s := Summarize(result)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Metric", "Count"})
	tbl.AppendRows([]table.Row{
		{"Source files", humanize.Comma(int64(s.Files))},
		{"Source size", humanize.Bytes(uint64(s.Bytes))},
		{"Internal modules", humanize.Comma(int64(s.InternalModules))},
		{"External modules", humanize.Comma(int64(s.ExternalModules))},
		{"Dependencies", humanize.Comma(int64(s.Edges))},
		{"Parse errors", humanize.Comma(int64(s.ParseErrors))},
		{"Relative imports ignored", humanize.Comma(int64(s.RelativeImports))},
	})
	tbl.AppendFooter(table.Row{"Root", result.Root})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
