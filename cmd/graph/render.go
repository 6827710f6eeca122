package graph

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/importviz/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/importviz/cmd/graph/formatters/dot"
	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/internal/config"
	"github.com/LegacyCodeHQ/importviz/internal/diaglog"
)

// Output is where a rendered run goes.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
	// GenerateURL prints the visualization URL in place of the document.
	GenerateURL bool
	Summary     bool
	NoColor     bool
}

// Label returns the graph name: the configured one, or the project directory name.
func Label(cfg *config.Config, result *depgraph.Result) string {
	if cfg.GraphName != "" {
		return cfg.GraphName
	}
	return filepath.Base(result.Root)
}

// Render reports diagnostics, prints the configured format and writes the DOT file.
func Render(out Output, cfg *config.Config, result *depgraph.Result) error {
	diaglog.NewReporter(out.Stderr, out.NoColor).Report(result.Diagnostics)

	formatter, err := NewFormatter(cfg.Format)
	if err != nil {
		return err
	}

	opts := formatters.RenderOptions{Label: Label(cfg, result), Root: result.Root}
	output, err := formatter.Format(result.Graph, opts)
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	if out.GenerateURL {
		if urlStr, ok := formatter.GenerateURL(output); ok {
			fmt.Fprintln(out.Stdout, urlStr)
		} else {
			fmt.Fprintf(out.Stderr, "Warning: URL generation is not supported for %s format\n\n", cfg.Format)
			writeDocument(out.Stdout, output)
		}
	} else {
		writeDocument(out.Stdout, output)
	}

	if cfg.DotOut != "" {
		if err := writeDOTFile(cfg.DotOut, result.Graph, opts); err != nil {
			return err
		}
	}

	if out.Summary {
		if err := diaglog.WriteSummary(out.Stderr, result); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

func writeDocument(w io.Writer, output string) {
	fmt.Fprint(w, output)
	if !strings.HasSuffix(output, "\n") {
		fmt.Fprintln(w)
	}
}

func writeDOTFile(path string, g *depgraph.DependencyGraph, opts formatters.RenderOptions) error {
	output, err := (&dot.Formatter{}).Format(g, opts)
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write DOT file: %w", err)
	}
	return nil
}
