package templates

import (
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
)

// ExtractStructural returns a template for every conditional that selects
// between rendered shapes, including one at the root of the tree.
func ExtractStructural(root ast.Expr, state zone.Map, diags *diag.List) []*StructuralTemplate {
	s := shaper{binder: newBinder(state), diags: diags}
	var out []*StructuralTemplate
	if ast.IsStructural(root) {
		out = append(out, s.structural(root, segment(segCond, 0), []int{0}))
	}
	for _, site := range sites(root) {
		for i, c := range ast.MeaningfulChildren(site.children()) {
			x := ast.ChildExpr(c)
			if _, isContainer := c.(*ast.JSXExprContainer); !isContainer || !ast.IsStructural(x) {
				continue
			}
			out = append(out, s.structural(x, join(site.key, segment(segCond, i)), extend(site.path, i)))
		}
	}
	return out
}

func (s shaper) structural(e ast.Expr, key string, path []int) *StructuralTemplate {
	b := s.branches(e, path)
	typ := StructuralTernary
	if _, ok := e.(*ast.Logical); ok {
		typ = StructuralLogicalAnd
	}
	if b.Condition == Complex {
		s.diags.Note(diag.TemplateSkipped, e, "condition %s is not a state path; runtime re-renders the branch", ast.Source(conditionOf(e)))
	}
	return &StructuralTemplate{
		Key:              key,
		Path:             path,
		Type:             typ,
		ConditionBinding: b.Condition,
		Branches:         b.Branches,
	}
}

func conditionOf(e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case *ast.Conditional:
		return x.Test
	case *ast.Logical:
		return x.Left
	}
	return e
}
