// Package component assembles a component descriptor from one component
// function.
//
// Assembly is a single read-only pass: props, hooks, locals and methods are
// collected from the function, the returned expression becomes the render
// tree, and the template extractors run over that tree. Nothing in the
// input AST is modified, so the same tree is safe to hand to the emitter
// afterwards.
package component

import (
	"context"
	"fmt"
	"strconv"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/codegen"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/hooks"
	"github.com/minimact/swig-sub001/lib/render"
	"github.com/minimact/swig-sub001/lib/templates"
	"github.com/minimact/swig-sub001/lib/zone"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("swig.component")

// DefaultFrameworkModules are import sources whose bindings are not treated
// as external libraries.
var DefaultFrameworkModules = []string{"react", "minimact", "@minimact/core"}

// Options configures assembly.
type Options struct {
	// FrameworkModules lists import sources that are not external
	// libraries. Nil means DefaultFrameworkModules.
	FrameworkModules []string

	// EventParams names the handler parameters treated as DOM events. Nil
	// means codegen.DefaultEventParams.
	EventParams []string

	// StrictHooks escalates malformed hook warnings to errors.
	StrictHooks bool
}

// Prop is one component property.
type Prop struct {
	Name     string
	Type     string // string, number, boolean, array, object or any
	Explicit bool   // Type came from an annotation or a default value
	Default  ast.Expr
}

// Local is a top-level variable declared in the component body.
type Local struct {
	Name string
	Init ast.Expr
	Type string

	// ClientComputed marks values that depend on an external library and
	// are computed in the browser.
	ClientComputed bool
}

// Method is a function the class declares: a named local function or an
// inline event handler.
type Method struct {
	Name   string
	Func   *ast.Func
	Inline bool
}

// Component is the assembled descriptor of one component.
type Component struct {
	Name     string
	Func     *ast.Func
	Props    []*Prop
	PropsBag string // name of an undestructured props parameter

	Hooks   []*hooks.Hook
	Locals  []*Local
	Methods []*Method

	// Body holds the statements that run before the render expression.
	Body   []ast.Stmt
	Render ast.Expr

	Plugins    []*render.PluginUsage
	StateTypes zone.Map
	Templates  *templates.Set
	Diags      *diag.List

	// External lists identifiers imported from non-framework modules.
	External map[string]string

	handlers    map[*ast.JSXAttr]string
	eventParams []string
	strings     map[string]bool
}

// Assemble builds the descriptor for the component fn. name is used when
// fn itself is anonymous.
func Assemble(ctx context.Context, name string, fn *ast.Func, imports []*ast.Import, opts Options) (*Component, error) {
	if name == "" {
		name = fn.Name
	}
	c := &Component{
		Name:        name,
		Func:        fn,
		StateTypes:  make(zone.Map),
		Diags:       diag.NewList(name, "swig.component"),
		External:    externalNames(imports, opts.FrameworkModules),
		handlers:    make(map[*ast.JSXAttr]string),
		eventParams: opts.EventParams,
		strings:     make(map[string]bool),
	}
	if c.eventParams == nil {
		c.eventParams = codegen.DefaultEventParams
	}

	c.collectProps(fn.Params)
	c.walk(ast.FuncBody(fn))
	c.inferPropTypes()
	c.collectHandlers()
	c.Plugins = render.AnalyzePlugins(c.Render)

	set, err := templates.ExtractAll(ctx, c.Render, c.StateTypes, c.Diags)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", name, err)
	}
	c.Templates = set

	if opts.StrictHooks {
		c.Diags.Escalate(diag.RecognizedButMalformed)
	}
	log.Debugf("assembled %s: %d props, %d hooks, %d locals, %d methods",
		name, len(c.Props), len(c.Hooks), len(c.Locals), len(c.Methods))
	return c, nil
}

// Context returns a code generation context describing the component.
func (c *Component) Context() *codegen.Context {
	ctx := codegen.NewContext(c.Name, c.Diags)
	ctx.SetEventParams(c.eventParams)
	for k, v := range c.StateTypes {
		ctx.Zones[k] = v
	}
	for k := range c.strings {
		ctx.Strings[k] = true
	}
	for _, h := range c.Hooks {
		if h.HasSetter() {
			ctx.Setters[h.Setter] = codegen.Setter{State: h.Name, Toggle: h.Kind == hooks.Toggle}
		}
	}
	if c.PropsBag != "" {
		ctx = ctx.WithAlias(c.PropsBag, "this")
	}
	return ctx
}

// Handlers maps inline event attributes to their method names.
func (c *Component) Handlers() map[*ast.JSXAttr]string {
	return c.handlers
}

// HooksOf returns the hooks of the given kinds in source order.
func (c *Component) HooksOf(kinds ...hooks.Kind) []*hooks.Hook {
	var out []*hooks.Hook
	for _, h := range c.Hooks {
		for _, k := range kinds {
			if h.Kind == k {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// TemplateBase returns the base template named by useTemplate, or "".
func (c *Component) TemplateBase() string {
	for _, h := range c.HooksOf(hooks.Template) {
		return h.Key
	}
	return ""
}

// Prop returns the named prop or nil.
func (c *Component) Prop(name string) *Prop {
	for _, p := range c.Props {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Failed reports whether any diagnostic is fatal.
func (c *Component) Failed() bool {
	return c.Diags.Count(diag.Fatal) > 0
}

// collectHandlers names inline event handler functions Handle0, Handle1,
// ... in document order, body statements first.
func (c *Component) collectHandlers() {
	visit := func(n ast.Node) bool {
		el, ok := n.(*ast.JSXElement)
		if !ok {
			return true
		}
		for _, a := range el.Attrs {
			if a.Spread != nil || !ast.IsEventAttr(a.Name) {
				continue
			}
			fn, ok := a.Expr().(*ast.Func)
			if !ok {
				continue
			}
			name := "Handle" + strconv.Itoa(len(c.handlers))
			c.handlers[a] = name
			c.Methods = append(c.Methods, &Method{Name: name, Func: fn, Inline: true})
		}
		return true
	}
	for _, s := range c.Body {
		ast.Inspect(s, visit)
	}
	if c.Render != nil {
		ast.Inspect(c.Render, visit)
	}
}

func externalNames(imports []*ast.Import, framework []string) map[string]string {
	if framework == nil {
		framework = DefaultFrameworkModules
	}
	skip := make(map[string]bool, len(framework))
	for _, m := range framework {
		skip[m] = true
	}
	out := make(map[string]string)
	for _, imp := range imports {
		if skip[imp.Source] {
			continue
		}
		for _, s := range imp.Specifiers {
			out[s.Local] = imp.Source
		}
	}
	return out
}
