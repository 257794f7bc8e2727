// Package zone classifies where an expression's data lives.
package zone

import (
	"sort"

	"github.com/minimact/swig-sub001/lib/ast"
)

// Zone is the data-dependency class of a variable or expression.
type Zone string

const (
	Static   Zone = "static"
	Server   Zone = "server"
	Client   Zone = "client"
	Markdown Zone = "markdown"
	Hybrid   Zone = "hybrid"
)

// Map maps variable names (and optionally dotted paths) to their zone.
type Map map[string]Zone

// Has reports whether name is a tracked variable.
func (m Map) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Names returns the tracked names in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Classify returns the zone of e given the component's state map.
//
// It is Static when nothing in e refers to a tracked name, the shared zone
// when every reference agrees and Hybrid otherwise. Function parameters
// shadow tracked names inside their bodies.
func Classify(e ast.Expr, m Map) Zone {
	seen := References(e, m)
	return Combine(seen...)
}

// Combine folds a set of zones the way Classify does.
func Combine(zones ...Zone) Zone {
	result := Static
	for _, z := range zones {
		if z == Static || z == "" {
			continue
		}
		if result == Static {
			result = z
			continue
		}
		if result != z {
			return Hybrid
		}
	}
	return result
}

// References returns the zones of every tracked reference in e.
func References(e ast.Expr, m Map) []Zone {
	var zones []Zone
	var visit func(n ast.Node, shadow map[string]bool)
	visit = func(n ast.Node, shadow map[string]bool) {
		switch x := n.(type) {
		case *ast.Ident:
			if shadow[x.Name] {
				return
			}
			if z, ok := m[x.Name]; ok {
				zones = append(zones, z)
			}
			return
		case *ast.Member:
			if info, ok := ast.PathOf(x); ok && !shadow[info.Root] {
				if z, ok := m[info.Path]; ok {
					zones = append(zones, z)
					return
				}
			}
		case *ast.Func:
			inner := make(map[string]bool, len(shadow)+len(x.Params))
			for k := range shadow {
				inner[k] = true
			}
			for _, p := range x.Params {
				for _, name := range ast.Identifiers(p.Target) {
					inner[name] = true
				}
			}
			for _, c := range ast.Children(x) {
				visit(c, inner)
			}
			return
		case *ast.Param:
			return
		}
		for _, c := range ast.Children(n) {
			visit(c, shadow)
		}
	}
	if e != nil {
		visit(e, nil)
	}
	return zones
}
