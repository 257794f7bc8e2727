package swig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/component"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/emit"
	"github.com/minimact/swig-sub001/lib/jsx"
	"github.com/minimact/swig-sub001/lib/manifest"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("swig")

// Options configures a compilation.
type Options struct {
	// Namespace of the generated classes. Empty means
	// emit.DefaultNamespace.
	Namespace string
	Usings    []string

	// Format selects the manifest encoding. Empty means JSON.
	Format manifest.Format

	// GeneratedAt is recorded in every manifest.
	GeneratedAt time.Time

	FrameworkModules []string
	EventParams      []string
	StrictHooks      bool

	// Source is the input path recorded in the generated file header.
	Source string
}

// Result is the output for one component.
type Result struct {
	Name     string
	Code     string
	Manifest *manifest.Manifest
	// Encoded is Manifest in the requested format.
	Encoded     []byte
	Diagnostics []diag.Diagnostic

	// Err is set when the component failed. Other components of the same
	// program are unaffected.
	Err error
}

// Failed reports whether the component produced no usable output.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// CompileJSON decodes a Babel/ESTree JSON document and compiles it.
func CompileJSON(ctx context.Context, data []byte, opts Options) ([]Result, error) {
	prog, err := ast.DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAST, err)
	}
	return Compile(ctx, prog, opts)
}

// ASTSuffix marks Babel/ESTree JSON documents.
const ASTSuffix = ".ast.json"

// IsSource reports whether path names a file CompileFile accepts: a Babel
// JSON document or a .jsx or .tsx source file.
func IsSource(path string) bool {
	if strings.HasSuffix(path, ASTSuffix) {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx", ".tsx":
		return true
	}
	return false
}

// CompileFile compiles the contents of the file at path, choosing the
// frontend by file name.
func CompileFile(ctx context.Context, path string, data []byte, opts Options) ([]Result, error) {
	if strings.HasSuffix(path, ASTSuffix) {
		return CompileJSON(ctx, data, opts)
	}
	dialect, ok := jsx.DialectFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized source file %s", ErrInvalidAST, path)
	}
	prog, err := jsx.Parse(ctx, data, dialect)
	switch {
	case errors.Is(err, jsx.ErrSyntax):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidAST, err)
	}
	return Compile(ctx, prog, opts)
}

// Compile compiles every component declared in prog, in declaration order.
// The returned error covers the program as a whole; per-component failures
// are reported in Result.Err.
func Compile(ctx context.Context, prog *ast.Program, opts Options) ([]Result, error) {
	if prog == nil {
		return nil, ErrInvalidAST
	}
	format, err := manifest.ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	found := component.Find(prog)
	if len(found) == 0 {
		return nil, ErrNoComponents
	}

	imports := component.Imports(prog)
	copts := component.Options{
		FrameworkModules: opts.FrameworkModules,
		EventParams:      opts.EventParams,
		StrictHooks:      opts.StrictHooks,
	}
	eopts := emit.Options{
		Namespace: opts.Namespace,
		Usings:    opts.Usings,
		Source:    opts.Source,
	}

	results := make([]Result, 0, len(found))
	for _, f := range found {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := compileOne(ctx, f, imports, copts, eopts, format, opts.GeneratedAt)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func compileOne(ctx context.Context, f component.Found, imports []*ast.Import, copts component.Options, eopts emit.Options, format manifest.Format, at time.Time) (Result, error) {
	c, err := component.Assemble(ctx, f.Name, f.Func, imports, copts)
	if err != nil {
		return Result{}, err
	}
	r := Result{Name: c.Name}

	code, err := emit.Class(c, eopts)
	r.Diagnostics = c.Diags.Items()
	switch {
	case err != nil:
		log.Errorf("%s", err)
		r.Err = err
		return r, nil
	case c.Failed():
		r.Err = fmt.Errorf("%s: %w", c.Name, ErrMalformedHooks)
		return r, nil
	}
	r.Code = code

	r.Manifest = manifest.Build(c.Name, c.Templates, at)
	r.Encoded, err = manifest.Encode(r.Manifest, format)
	if err != nil {
		return Result{}, fmt.Errorf("component %s: encode manifest: %w", c.Name, err)
	}
	log.Infof("compiled %s: %d templates", c.Name, r.Manifest.Len())
	return r, nil
}
