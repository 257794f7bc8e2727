// Package generator drives swig over a source tree: it finds component AST
// files, compiles them and writes the generated classes and manifests.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	swig "github.com/minimact/swig-sub001"
	"github.com/minimact/swig-sub001/lib/config"
	"github.com/minimact/swig-sub001/lib/manifest"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("swig.generator")

// Options configures the generator.
type Options struct {
	DryRun bool

	// OutputDir receives generated files. Empty writes them next to each
	// source file.
	OutputDir string

	// Parallelism bounds concurrent file compilations. Zero means
	// runtime.NumCPU().
	Parallelism int

	Compile swig.Options
}

// ConfigOptions returns generator options for a loaded project.
func ConfigOptions(c *config.Config) Options {
	return Options{
		OutputDir:   c.OutputDir(),
		Parallelism: c.Compiler.Parallelism,
		Compile: swig.Options{
			Namespace:        c.Project.Namespace,
			Format:           c.Format(),
			FrameworkModules: c.Compiler.FrameworkModules,
			EventParams:      c.Compiler.EventParams,
			StrictHooks:      c.Compiler.StrictHooks,
		},
	}
}

// Generator generates swig output.
type Generator struct {
	opts Options

	mu      sync.Mutex
	written map[string]string // output path -> source that produced it
}

// New creates a new generator.
func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Stats summarizes a Generate run.
type Stats struct {
	Files      int
	Components int
	Failed     int
	Written    int
}

// Generate compiles the component files matched by patterns. Files compile
// concurrently. A component that fails does not stop the others; the
// returned error joins every component failure.
func (g *Generator) Generate(ctx context.Context, patterns ...string) (Stats, error) {
	var stats Stats
	if _, err := manifest.ParseFormat(string(g.opts.Compile.Format)); err != nil {
		return stats, err
	}
	sources, err := g.findSources(patterns)
	if err != nil {
		return stats, err
	}
	stats.Files = len(sources)

	g.written = make(map[string]string)
	var (
		mu       sync.Mutex
		failures []error
	)

	grp, ctx := errgroup.WithContext(ctx)
	limit := g.opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	grp.SetLimit(limit)

	for _, src := range sources {
		grp.Go(func() error {
			fs, errs, err := g.generateFile(ctx, src)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			mu.Lock()
			defer mu.Unlock()
			stats.Components += fs.Components
			stats.Failed += fs.Failed
			stats.Written += fs.Written
			failures = append(failures, errs...)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return stats, err
	}

	log.Noticef("%d files, %d components, %d failed, %d written",
		stats.Files, stats.Components, stats.Failed, stats.Written)
	return stats, errors.Join(failures...)
}

// Clean removes generated files for the given patterns.
func (g *Generator) Clean(patterns ...string) error {
	dirs, err := g.findDirs(patterns)
	if err != nil {
		return err
	}
	if g.opts.OutputDir != "" {
		dirs = append(dirs, g.opts.OutputDir)
	}

	for _, dir := range dirs {
		if err := g.cleanDir(dir); err != nil {
			return fmt.Errorf("directory %s: %w", dir, err)
		}
	}
	return nil
}

// findSources resolves patterns to component AST files. A pattern is a
// file, a directory, or a directory followed by /... for the whole tree.
func (g *Generator) findSources(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var sources []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			sources = append(sources, path)
		}
	}

	for _, pattern := range patterns {
		if swig.IsSource(pattern) {
			if _, err := os.Stat(pattern); err != nil {
				return nil, err
			}
			add(pattern)
			continue
		}
		dirs, err := g.findDirs([]string{pattern})
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if !entry.IsDir() && swig.IsSource(entry.Name()) {
					add(filepath.Join(dir, entry.Name()))
				}
			}
		}
	}
	sort.Strings(sources)
	return sources, nil
}

// findDirs resolves patterns to directory paths.
func (g *Generator) findDirs(patterns []string) ([]string, error) {
	var dirs []string

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			dirs = append(dirs, pattern)
			continue
		}
		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			// Skip hidden directories and dependency trees
			base := filepath.Base(path)
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") ||
				base == "node_modules" || base == "bin" || base == "obj") {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// generateFile compiles one source file and writes its outputs.
func (g *Generator) generateFile(ctx context.Context, src string) (Stats, []error, error) {
	var stats Stats
	data, err := os.ReadFile(src)
	if err != nil {
		return stats, nil, err
	}
	info, err := os.Stat(src)
	if err != nil {
		return stats, nil, err
	}

	opts := g.opts.Compile
	opts.GeneratedAt = info.ModTime()
	opts.Source = filepath.ToSlash(src)

	results, err := swig.CompileFile(ctx, src, data, opts)
	if errors.Is(err, swig.ErrNoComponents) {
		log.Infof("%s: no components", src)
		return stats, nil, nil
	}
	if err != nil {
		return stats, nil, err
	}

	var failures []error
	for _, r := range results {
		stats.Components++
		for _, d := range r.Diagnostics {
			log.Debugf("%s: %s", src, d)
		}
		if r.Err != nil {
			stats.Failed++
			failures = append(failures, fmt.Errorf("%s: %w", src, r.Err))
			continue
		}
		n, err := g.writeComponent(src, &r)
		if err != nil {
			return stats, nil, err
		}
		stats.Written += n
	}
	return stats, failures, nil
}
