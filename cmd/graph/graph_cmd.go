package graph

import (
	"fmt"

	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/internal/diaglog"
	"github.com/spf13/cobra"
)

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "graph [root]",
		Short: "Print the module dependency graph of a Python project",
		Long: `Scan a Python project, parse every import statement, and print the module
dependency graph.

The text listing shows each project module followed by the modules it imports
directly. Standard library imports are left out unless --include-stdlib is set;
relative imports are reported on stderr and left out of the graph.

Examples:
  importviz graph                          # text listing of the current directory
  importviz graph ./src -f dot | dot -Tpdf -o deps.pdf
  importviz graph -o deps.dot              # listing on stdout, DOT written to deps.dot
  importviz graph -f dot -u                # GraphvizOnline URL
  importviz graph --exclude-dir migrations --summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, args, opts)
		},
	}

	opts.AddFlags(cmd)

	return cmd
}

func runGraph(cmd *cobra.Command, args []string, opts *Options) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := opts.LoadSettings(cmd)
	if err != nil {
		return err
	}

	buildOpts := BuildOptions(cfg)
	buildOpts.Logger = diaglog.NewLogger(cmd.ErrOrStderr(), VerboseFlag(cmd))

	result, err := depgraph.BuildDependencyGraph(cmd.Context(), root, buildOpts)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	return Render(Output{
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		GenerateURL: opts.GenerateURL,
		Summary:     opts.Summary,
		NoColor:     cfg.NoColor,
	}, cfg, result)
}
