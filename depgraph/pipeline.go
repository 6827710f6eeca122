package depgraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/LegacyCodeHQ/importviz/depgraph/languages/python"
	"github.com/LegacyCodeHQ/importviz/vcs"
)

// ImportParser extracts the raw imports of one file.
type ImportParser func(filePath string, sourceCode []byte) ([]python.Import, error)

// BuildOptions configures a pipeline run. The zero value is usable.
type BuildOptions struct {
	Scan ScanOptions
	// IncludeStdlib keeps standard library imports as external modules.
	IncludeStdlib bool
	// Workers bounds concurrent parsing. Zero means runtime.NumCPU().
	Workers int
	// ContentReader defaults to the filesystem.
	ContentReader vcs.ContentReader
	// Parser defaults to python.ParsePythonImports.
	Parser ImportParser
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Result is the outcome of a complete pipeline run.
type Result struct {
	Root        string
	Files       []string
	Graph       *DependencyGraph
	Diagnostics []Diagnostic
	// Bytes is the total size of the source read.
	Bytes int64
}

// BuildDependencyGraph scans root, parses and resolves every file, and folds the results
// into a graph. Only an invalid root (or cancellation of ctx) fails the run; unparsable
// files and relative imports are reported in Result.Diagnostics.
func BuildDependencyGraph(ctx context.Context, root string, opts BuildOptions) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	absRoot, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	files, err := CollectSourceFiles(absRoot, opts.Scan)
	if err != nil {
		return nil, err
	}
	logger.Debug("scanned source files", "root", absRoot, "files", len(files))

	candidates, sources, duplicates, err := BuildModuleCandidates(absRoot, files)
	if err != nil {
		return nil, err
	}
	for _, dup := range duplicates {
		if python.IsPackageInit(dup) {
			logger.Debug("skipping package __init__.py shadowed by a module file of the same name", "file", dup)
			continue
		}
		logger.Debug("skipping module file shadowed by a package of the same name", "file", dup)
	}

	resolver := Resolver{Candidates: candidates, IncludeStdlib: opts.IncludeStdlib}
	results, err := processSourceModules(ctx, sources, resolver, opts, logger)
	if err != nil {
		return nil, err
	}

	graph, err := BuildGraphFromResults(results)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}

	var diagnostics []Diagnostic
	var size int64
	for _, result := range results {
		diagnostics = append(diagnostics, result.Diagnostics...)
		size += int64(result.Bytes)
	}

	edges := graph.Edges()
	logger.Debug("built dependency graph", "modules", graph.Len(), "edges", len(edges), "diagnostics", len(diagnostics))

	return &Result{
		Root:        absRoot,
		Files:       files,
		Graph:       graph,
		Diagnostics: diagnostics,
		Bytes:       size,
	}, nil
}

type indexedResult struct {
	index  int
	result FileResult
}

// processSourceModules parses and resolves sources on a worker pool. Results are
// collected by index so their order never depends on completion order.
func processSourceModules(
	ctx context.Context,
	sources []SourceModule,
	resolver Resolver,
	opts BuildOptions,
	logger *slog.Logger,
) ([]FileResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	contentReader := opts.ContentReader
	if contentReader == nil {
		contentReader = vcs.FilesystemContentReader()
	}
	parse := opts.Parser
	if parse == nil {
		parse = func(_ string, sourceCode []byte) ([]python.Import, error) {
			return python.ParsePythonImports(sourceCode)
		}
	}

	logger.Debug("parsing source modules", "modules", len(sources), "workers", workers)

	jobs := make(chan int)
	out := make(chan indexedResult)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result := processSourceModule(sources[idx], resolver, contentReader, parse)
				select {
				case out <- indexedResult{index: idx, result: result}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for idx := range sources {
			select {
			case jobs <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]FileResult, len(sources))
	received := 0
	for r := range out {
		results[r.index] = r.result
		received++
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if received != len(sources) {
		return nil, errors.New("parse workers stopped before every file was processed")
	}
	return results, nil
}

func processSourceModule(
	source SourceModule,
	resolver Resolver,
	contentReader vcs.ContentReader,
	parse ImportParser,
) FileResult {
	result := FileResult{Module: source}

	content, err := contentReader(source.File)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, newParseDiagnostic(source.File, err))
		return result
	}
	result.Bytes = len(content)

	imports, err := parse(source.File, content)
	if err != nil {
		result.Diagnostics = append(result.Diagnostics, newParseDiagnostic(source.File, err))
		return result
	}

	seen := make(map[string]bool)
	for _, imp := range imports {
		targets, err := resolver.Resolve(imp)
		if errors.Is(err, ErrUnsupportedRelativeImport) {
			result.Diagnostics = append(result.Diagnostics, newRelativeImportDiagnostic(source.File, imp.Line, imp.String()))
			continue
		}
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, newParseDiagnostic(source.File, err))
			continue
		}

		for _, target := range targets {
			if target.Name == source.Name || seen[target.Name] {
				continue
			}
			seen[target.Name] = true
			result.Targets = append(result.Targets, target)
		}
	}

	return result
}
