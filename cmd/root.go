package cmd

import (
	"os"

	"github.com/LegacyCodeHQ/importviz/cmd/graph"
	"github.com/LegacyCodeHQ/importviz/cmd/watch"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

const versionTemplate = `{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`

// NewRootCommand builds the importviz command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "importviz",
		Short: "Visualize the module dependencies of a Python project",
		Long: `importviz statically parses the import statements of a Python project and
prints its module dependency graph, as a plain listing or as a Graphviz DOT
document that 'dot' can render.

Settings are read from .importviz.yaml in the working or home directory,
IMPORTVIZ_* environment variables, and command-line flags, in increasing order
of precedence.

Use 'importviz <command> --help' for detailed information about a command.`,
		Version:      version,
		SilenceUsage: true,
		Annotations:  map[string]string{"buildDate": buildDate, "commit": commit},
	}

	rootCmd.SetVersionTemplate(versionTemplate)

	rootCmd.PersistentFlags().String("config", "", "Config file (default: .importviz.yaml in the working or home directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log pipeline progress to stderr")

	rootCmd.AddCommand(graph.NewCommand())
	rootCmd.AddCommand(watch.NewCommand())

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
