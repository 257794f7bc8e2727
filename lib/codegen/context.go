// Package codegen translates expressions and statements into C#.
//
// Every entry point takes a *Context describing the component being
// compiled. Nothing in this package keeps state between calls, so
// components can be generated concurrently with separate contexts.
package codegen

import (
	"strconv"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
)

// Setter describes a state-mutation function recorded by a hook.
type Setter struct {
	State  string // state field the setter writes
	Toggle bool   // calling it flips a boolean instead of taking a value
}

// DefaultEventParams are the parameter names treated as DOM event objects.
var DefaultEventParams = []string{"e", "event", "evt"}

// Context carries per-component information consulted during generation.
type Context struct {
	Component string
	Setters   map[string]Setter
	Zones     zone.Map
	Diags     *diag.List

	// Strings holds names known to be strings, for .length translation.
	Strings map[string]bool

	// JSX renders a JSX node that appears inside an expression. The render
	// package installs it; when nil such nodes become null.
	JSX func(ast.Expr) string

	eventParams map[string]bool
	aliases     map[string]string
	temp        *int
}

// NewContext returns a context for the named component.
func NewContext(component string, diags *diag.List) *Context {
	c := &Context{
		Component: component,
		Setters:   make(map[string]Setter),
		Zones:     make(zone.Map),
		Diags:     diags,
		Strings:   make(map[string]bool),
		temp:      new(int),
	}
	c.SetEventParams(DefaultEventParams)
	return c
}

// SetEventParams replaces the event parameter names.
func (c *Context) SetEventParams(names []string) {
	c.eventParams = make(map[string]bool, len(names))
	for _, n := range names {
		c.eventParams[n] = true
	}
}

// IsEventParam reports whether name refers to a DOM event object.
func (c *Context) IsEventParam(name string) bool {
	return c.eventParams[name]
}

// WithAlias returns a copy of c in which the identifier name is emitted as
// replacement. Functional state updaters use it to inline their parameter.
func (c *Context) WithAlias(name, replacement string) *Context {
	cp := *c
	cp.aliases = make(map[string]string, len(c.aliases)+1)
	for k, v := range c.aliases {
		cp.aliases[k] = v
	}
	cp.aliases[name] = replacement
	return &cp
}

func (c *Context) alias(name string) (string, bool) {
	r, ok := c.aliases[name]
	return r, ok
}

// tempName returns a fresh local variable name for destructuring.
func (c *Context) tempName() string {
	if c.temp == nil {
		c.temp = new(int)
	}
	n := *c.temp
	*c.temp++
	return "__tmp" + strconv.Itoa(n)
}

func (c *Context) unsupported(at ast.Node, what string) {
	c.Diags.Note(diag.UnsupportedExpression, at, "unsupported %s; emitting null", what)
}
