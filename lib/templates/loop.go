package templates

import (
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
)

// ExtractLoops returns a template for every `array.map(item => <jsx/>)`
// child in the element tree.
func ExtractLoops(root ast.Expr, state zone.Map, diags *diag.List) []*LoopTemplate {
	s := shaper{binder: newBinder(state), diags: diags}
	var out []*LoopTemplate
	for _, site := range sites(root) {
		for i, c := range ast.MeaningfulChildren(site.children()) {
			call, ok := ast.ChildExpr(c).(*ast.Call)
			if !ok || !ast.IsMapCall(call) {
				continue
			}
			lt := s.mapLoop(call)
			if lt == nil {
				continue
			}
			lt.Key = join(site.key, segment(segLoop, i))
			lt.Path = extend(site.path, i)
			out = append(out, lt)
		}
	}
	return out
}

// mapLoop describes one map call, or returns nil and records why it could
// not.
func (s shaper) mapLoop(call *ast.Call) *LoopTemplate {
	recv, _, args, _ := ast.MethodCall(call)
	fn := args[0].(*ast.Func)

	array, _, ok := s.path(recv)
	if !ok {
		s.skip(call, "loop source %s is not a state path", ast.Source(recv))
		return nil
	}
	if len(fn.Params) == 0 {
		s.skip(call, "loop callback over %s takes no item", array)
		return nil
	}
	item, ok := fn.Params[0].Target.(*ast.Ident)
	if !ok {
		s.skip(call, "loop item over %s is destructured", array)
		return nil
	}
	index := ""
	if len(fn.Params) > 1 {
		if id, ok := fn.Params[1].Target.(*ast.Ident); ok {
			index = id.Name
		}
	}
	body := ast.ReturnedExpr(fn)
	if !ast.IsJSX(body) {
		s.skip(call, "loop body over %s does not return JSX", array)
		return nil
	}
	if bareReference(body, item.Name) {
		s.skip(call, "loop body uses %s without a property; only item fields can be templated", item.Name)
		return nil
	}

	inner := shaper{binder: s.loop(item.Name, index), diags: s.diags}
	lt := &LoopTemplate{
		ArrayBinding: array,
		ItemVar:      item.Name,
		IndexVar:     index,
		ItemTemplate: inner.shape(body, nil),
	}
	if el, ok := body.(*ast.JSXElement); ok {
		if k := el.Attr("key"); k != nil {
			if p, _, ok := inner.path(k.Expr()); ok {
				lt.KeyBinding = p
			}
		}
	}
	return lt
}

func (s shaper) skip(at ast.Node, format string, args ...any) {
	s.diags.Note(diag.TemplateSkipped, at, format+"; loop template skipped", args...)
}

// bareReference reports whether name appears in e other than as the
// object of a property access.
func bareReference(e ast.Expr, name string) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if found {
			return false
		}
		switch x := n.(type) {
		case *ast.Member:
			if info, ok := ast.PathOf(x); ok && info.Root == name {
				return false
			}
		case *ast.Ident:
			if x.Name == name {
				found = true
			}
		}
		return true
	})
	return found
}
