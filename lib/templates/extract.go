package templates

import (
	"context"
	"fmt"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("swig.templates")

// ExtractAll runs the four extractors concurrently over the same tree. The
// tree and state map are only read. An extractor that panics loses its
// templates and leaves a diagnostic; the others are unaffected. The error
// is non-nil only when ctx is cancelled.
func ExtractAll(ctx context.Context, root ast.Expr, state zone.Map, diags *diag.List) (*Set, error) {
	set := &Set{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return guard(ctx, "text", diags, func() { set.Text = ExtractText(root, state) })
	})
	g.Go(func() error {
		return guard(ctx, "loop", diags, func() { set.Loops = ExtractLoops(root, state, diags) })
	})
	g.Go(func() error {
		return guard(ctx, "structural", diags, func() { set.Structural = ExtractStructural(root, state, diags) })
	})
	g.Go(func() error {
		return guard(ctx, "expression", diags, func() { set.Expressions = ExtractExpressions(root, state, diags) })
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debugf("extracted %d text, %d loop, %d structural, %d expression templates",
		len(set.Text), len(set.Loops), len(set.Structural), len(set.Expressions))
	return set, nil
}

func guard(ctx context.Context, name string, diags *diag.List, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			diags.Warn(diag.TemplateSkipped, nil, "%s extractor failed: %s", name, fmt.Sprint(r))
		}
	}()
	fn()
	return nil
}
