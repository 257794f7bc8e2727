package render

import "github.com/minimact/swig-sub001/lib/ast"

// PluginTag is the element name that mounts a plugin.
const PluginTag = "Plugin"

// PluginUsage is a validated <Plugin> element.
type PluginUsage struct {
	Name    string
	State   ast.Expr
	Version string
	Element *ast.JSXElement
}

// AnalyzePlugins returns the well-formed plugin usages under root in source
// order. Elements missing a literal name or a state expression are left
// out; generating them later fails with a structural error.
func AnalyzePlugins(root ast.Expr) []*PluginUsage {
	var out []*PluginUsage
	ast.Inspect(root, func(n ast.Node) bool {
		el, ok := n.(*ast.JSXElement)
		if !ok || el.Name != PluginTag {
			return true
		}
		name, ok := literalAttr(el, "name")
		if !ok || name == "" {
			return true
		}
		state := el.Attr("state")
		if state == nil || state.Expr() == nil {
			return true
		}
		u := &PluginUsage{Name: name, State: state.Expr(), Element: el}
		u.Version, _ = literalAttr(el, "version")
		out = append(out, u)
		return true
	})
	return out
}

func literalAttr(el *ast.JSXElement, name string) (string, bool) {
	a := el.Attr(name)
	if a == nil {
		return "", false
	}
	s, ok := a.Expr().(*ast.StringLit)
	if !ok {
		return "", false
	}
	return s.Value, true
}
