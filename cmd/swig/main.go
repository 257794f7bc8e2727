package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	swig "github.com/minimact/swig-sub001"
	"github.com/minimact/swig-sub001/lib/config"
	"github.com/minimact/swig-sub001/lib/generator"
	"github.com/minimact/swig-sub001/lib/manifest"
	"github.com/minimact/swig-sub001/lib/report"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(ctx, args)
	case "clean":
		err = runClean(args)
	case "inspect":
		err = runInspect(ctx, args)
	case "version":
		fmt.Printf("swig version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`swig - JSX component compiler for Minimact

Usage:
  swig <command> [arguments]

Commands:
  generate [patterns]   Compile *.jsx, *.tsx and *.ast.json files (e.g., ./...)
  clean [patterns]      Remove generated files (*.g.cs, *.templates.*)
  inspect <file>        Print the generated code and manifests of one file
  version               Print version
  help                  Show this help

Options:
  -v, -vv               More logging
  -q                    Only log errors

Options for generate:
  --dry-run             Show what would be generated without writing files
  --format FORMAT       Manifest format: json, msgpack or cbor

Options for inspect:
  --html FILE           Write an HTML report instead of printing

Without patterns, the source directories of swig.toml are used.

Examples:
  swig generate ./...                     Generate for the whole tree
  swig generate --format cbor ./src/...   Generate CBOR manifests
  swig inspect --html out.html src/Counter.jsx
  swig clean ./...                        Remove all generated files`)
}

// commonFlags returns a flag set carrying the logging flags.
func commonFlags(name string) (*flag.FlagSet, func()) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	v := fs.Bool("v", false, "verbose logging")
	vv := fs.Bool("vv", false, "debug logging")
	q := fs.Bool("q", false, "only log errors")
	return fs, func() {
		verbosity := 0
		switch {
		case *q:
			verbosity = -2
		case *vv:
			verbosity = 2
		case *v:
			verbosity = 1
		}
		commonlog.Configure(verbosity, nil)
	}
}

// loadConfig finds swig.toml from the working directory, falling back to
// defaults.
func loadConfig() (*config.Config, error) {
	c, err := config.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if c == nil {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		c = config.Default(wd)
	}
	return c, nil
}

func patternsOrConfig(patterns []string, c *config.Config) []string {
	if len(patterns) > 0 {
		return patterns
	}
	for _, dir := range c.SourceDirPaths() {
		patterns = append(patterns, dir+"/...")
	}
	return patterns
}

func runGenerate(ctx context.Context, args []string) error {
	fs, configureLog := commonFlags("generate")
	dryRun := fs.Bool("dry-run", false, "show what would be generated")
	format := fs.String("format", "", "manifest format")
	_ = fs.Parse(args)
	configureLog()

	c, err := loadConfig()
	if err != nil {
		return err
	}
	opts := generator.ConfigOptions(c)
	opts.DryRun = *dryRun
	if *format != "" {
		f, err := manifest.ParseFormat(*format)
		if err != nil {
			return err
		}
		opts.Compile.Format = f
	}

	stats, err := generator.New(opts).Generate(ctx, patternsOrConfig(fs.Args(), c)...)
	if err != nil {
		return err
	}
	fmt.Printf("%d components compiled from %d files\n", stats.Components, stats.Files)
	return nil
}

func runClean(args []string) error {
	fs, configureLog := commonFlags("clean")
	dryRun := fs.Bool("dry-run", false, "show what would be removed")
	_ = fs.Parse(args)
	configureLog()

	c, err := loadConfig()
	if err != nil {
		return err
	}
	opts := generator.ConfigOptions(c)
	opts.DryRun = *dryRun
	return generator.New(opts).Clean(patternsOrConfig(fs.Args(), c)...)
}

func runInspect(ctx context.Context, args []string) error {
	fs, configureLog := commonFlags("inspect")
	html := fs.String("html", "", "write an HTML report to this file")
	_ = fs.Parse(args)
	configureLog()

	if fs.NArg() != 1 {
		return fmt.Errorf("inspect takes exactly one file")
	}
	path := fs.Arg(0)

	c, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	opts := generator.ConfigOptions(c).Compile
	opts.Format = manifest.JSON
	opts.Source = path

	results, err := swig.CompileFile(ctx, path, data, opts)
	if err != nil {
		return err
	}

	if *html != "" {
		entries := make([]report.Entry, 0, len(results))
		for _, r := range results {
			entries = append(entries, report.Entry{
				Component: r.Name,
				Code:      r.Code,
				Manifest:  string(r.Encoded),
				Diags:     r.Diagnostics,
				Err:       r.Err,
			})
		}
		if err := report.WriteFile(ctx, *html, report.Page(path, entries)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *html)
		return nil
	}

	for _, r := range results {
		fmt.Printf("==> %s\n", r.Name)
		for _, d := range r.Diagnostics {
			fmt.Printf("  %s\n", d)
		}
		if r.Err != nil {
			fmt.Printf("  error: %v\n", r.Err)
			continue
		}
		fmt.Println(r.Code)
		fmt.Println(string(r.Encoded))
	}
	return nil
}
