package graph

import (
	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/internal/config"
	"github.com/spf13/cobra"
)

// Options holds the flags shared by the graph and watch commands. Flags override
// the loaded configuration only when set on the command line.
type Options struct {
	Format        string
	DotOut        string
	IncludeStdlib bool
	ExcludeDirs   []string
	Workers       int
	GraphName     string
	GenerateURL   bool
	Summary       bool
	NoColor       bool
}

// AddFlags registers the shared flags on cmd.
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Format, "format", "f", config.DefaultFormat, "Output format (text, dot, json, mermaid)")
	cmd.Flags().StringVarP(&o.DotOut, "dot-out", "o", config.DefaultDotOut, "Also write the DOT graph to this file")
	cmd.Flags().BoolVar(&o.IncludeStdlib, "include-stdlib", config.DefaultIncludeStdlib, "Keep standard library imports as external modules")
	cmd.Flags().StringSliceVar(&o.ExcludeDirs, "exclude-dir", nil, "Directory names to skip in addition to the defaults (repeatable)")
	cmd.Flags().IntVarP(&o.Workers, "workers", "j", config.DefaultWorkers, "Parallel parse workers (0 uses every CPU)")
	cmd.Flags().StringVar(&o.GraphName, "graph-name", config.DefaultGraphName, "Graph name (default: project directory name)")
	cmd.Flags().BoolVarP(&o.GenerateURL, "url", "u", false, "Print a visualization URL instead of the document (dot, mermaid)")
	cmd.Flags().BoolVar(&o.Summary, "summary", false, "Print a summary table to stderr")
	cmd.Flags().BoolVar(&o.NoColor, "no-color", config.DefaultNoColor, "Print diagnostics without color")
}

// LoadSettings loads the configuration named by the --config flag and applies the
// flags that were set explicitly.
func (o *Options) LoadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(stringFlag(cmd, "config"))
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("dot-out") {
		cfg.DotOut = o.DotOut
	}
	if flags.Changed("include-stdlib") {
		cfg.IncludeStdlib = o.IncludeStdlib
	}
	if flags.Changed("exclude-dir") {
		cfg.ExcludeDirs = append(cfg.ExcludeDirs, o.ExcludeDirs...)
	}
	if flags.Changed("workers") {
		cfg.Workers = o.Workers
	}
	if flags.Changed("graph-name") {
		cfg.GraphName = o.GraphName
	}
	if flags.Changed("no-color") {
		cfg.NoColor = o.NoColor
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildOptions converts cfg into pipeline options.
func BuildOptions(cfg *config.Config) depgraph.BuildOptions {
	var excluded []string
	if len(cfg.ExcludeDirs) > 0 {
		excluded = append(append(excluded, depgraph.DefaultExcludedDirs...), cfg.ExcludeDirs...)
	}

	return depgraph.BuildOptions{
		Scan:          depgraph.ScanOptions{ExcludedDirs: excluded},
		IncludeStdlib: cfg.IncludeStdlib,
		Workers:       cfg.Workers,
	}
}

func stringFlag(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// VerboseFlag reports whether the persistent --verbose flag is set.
func VerboseFlag(cmd *cobra.Command) bool {
	return stringFlag(cmd, "verbose") == "true"
}
