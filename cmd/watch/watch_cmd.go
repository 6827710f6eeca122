package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LegacyCodeHQ/importviz/cmd/graph"
	"github.com/LegacyCodeHQ/importviz/depgraph"
	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
	"github.com/LegacyCodeHQ/importviz/internal/config"
	"github.com/LegacyCodeHQ/importviz/internal/diaglog"
	"github.com/spf13/cobra"
)

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &graph.Options{}

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Rebuild the dependency graph whenever Python files change",
		Long: `Watch a Python project for file changes and print the dependency graph again
after every change. With --dot-out the DOT file is rewritten on each rebuild, so a
viewer that reloads the file stays current.

Examples:
  importviz watch
  importviz watch ./src -o deps.dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	opts.AddFlags(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *graph.Options) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	absRoot, err := depgraph.ResolveRoot(root)
	if err != nil {
		return err
	}

	cfg, err := opts.LoadSettings(cmd)
	if err != nil {
		return err
	}

	r, err := newRebuilder(cmd, absRoot, cfg, opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := newProjectWatcher(absRoot, r.buildOpts.Scan, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := r.rebuild(ctx); err != nil {
		return fmt.Errorf("initial graph build failed: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s\n", absRoot)
	fmt.Fprintf(cmd.ErrOrStderr(), "Press Ctrl+C to stop\n")

	return watcher.run(ctx, func(ctx context.Context) {
		if err := r.rebuild(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "graph rebuild error: %v\n", err)
		}
	})
}

// rebuilder reruns the whole pipeline, reusing parses of unchanged files.
type rebuilder struct {
	root      string
	cfg       *config.Config
	buildOpts depgraph.BuildOptions
	out       graph.Output
	cache     *python.ParseCache
}

func newRebuilder(cmd *cobra.Command, root string, cfg *config.Config, opts *graph.Options) (*rebuilder, error) {
	cache, err := python.NewParseCache(python.DefaultParseCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}

	buildOpts := graph.BuildOptions(cfg)
	buildOpts.Parser = cache.Parse
	buildOpts.Logger = diaglog.NewLogger(cmd.ErrOrStderr(), graph.VerboseFlag(cmd))

	return &rebuilder{
		root:      root,
		cfg:       cfg,
		buildOpts: buildOpts,
		out: graph.Output{
			Stdout:      cmd.OutOrStdout(),
			Stderr:      cmd.ErrOrStderr(),
			GenerateURL: opts.GenerateURL,
			Summary:     opts.Summary,
			NoColor:     cfg.NoColor,
		},
		cache: cache,
	}, nil
}

func (r *rebuilder) rebuild(ctx context.Context) error {
	result, err := depgraph.BuildDependencyGraph(ctx, r.root, r.buildOpts)
	if err != nil {
		return err
	}
	r.buildOpts.Logger.Debug("rebuilt dependency graph", "modules", result.Graph.Len(), "cached_parses", r.cache.Len())
	return graph.Render(r.out, r.cfg, result)
}
