// Package emit writes the C# class for an assembled component.
//
// The class skeleton comes from a text/template; member bodies are produced
// by codegen and render into an indented writer and spliced in as blocks.
package emit

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/codegen"
	"github.com/minimact/swig-sub001/lib/component"
	"github.com/minimact/swig-sub001/lib/hooks"
	"github.com/minimact/swig-sub001/lib/render"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("swig.emit")

// DefaultNamespace is used when Options.Namespace is empty.
const DefaultNamespace = "Minimact.Components"

// BaseClass is the base of components without a template.
const BaseClass = "MinimactComponent"

// DefaultUsings are the namespaces every generated file imports.
var DefaultUsings = []string{
	"System",
	"System.Collections.Generic",
	"System.Linq",
	"System.Threading.Tasks",
	"Minimact.AspNetCore.Core",
	"Minimact.AspNetCore.Extensions",
}

// Options configures class emission.
type Options struct {
	Namespace string
	Usings    []string // added after DefaultUsings
	Source    string   // recorded in the file header
}

// memberIndent is the writer indent of class members: namespace, class.
const memberIndent = 2

type classData struct {
	Source    string
	Namespace string
	Usings    []string
	Name      string
	Base      string
	Members   []string
}

// Class returns the C# source for c. The error is a structural validation
// error raised while rendering the tree.
func Class(c *component.Component, opts Options) (string, error) {
	e := &emitter{c: c, ctx: c.Context()}
	e.render = render.New(e.ctx, c.Handlers(), c.Plugins)

	members, err := e.members()
	if err != nil {
		return "", err
	}
	data := classData{
		Source:    opts.Source,
		Namespace: opts.Namespace,
		Usings:    append(append([]string(nil), DefaultUsings...), opts.Usings...),
		Name:      c.Name,
		Base:      BaseClass,
		Members:   members,
	}
	if data.Namespace == "" {
		data.Namespace = DefaultNamespace
	}
	if base := c.TemplateBase(); base != "" {
		data.Base = base
	}

	tmpl, err := template.New("class").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(classTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute class template: %w", err)
	}
	log.Debugf("emitted class %s with %d members", c.Name, len(members))
	return buf.String(), nil
}

type emitter struct {
	c      *component.Component
	ctx    *codegen.Context
	render *render.Generator
	blocks []string
}

func (e *emitter) block(fn func(w *codegen.Writer)) {
	w := codegen.NewWriter(memberIndent)
	fn(w)
	e.blocks = append(e.blocks, strings.TrimSuffix(w.String(), "\n"))
}

func (e *emitter) members() ([]string, error) {
	for _, p := range e.c.Props {
		e.prop(p)
	}
	for _, h := range e.c.Hooks {
		e.field(h)
	}
	for _, l := range e.c.Locals {
		if l.ClientComputed {
			e.block(func(w *codegen.Writer) {
				w.Line("[ClientComputed(%s)]", codegen.Quote(l.Name))
				w.Line("private dynamic %s;", l.Name)
			})
		}
	}
	for _, h := range e.c.HooksOf(hooks.Computed) {
		e.computed(h)
	}
	for _, h := range e.c.HooksOf(hooks.Template) {
		if h.Options != nil {
			e.block(func(w *codegen.Writer) {
				w.Line("protected override dynamic TemplateProps => %s;", codegen.Expr(e.ctx, h.Options))
			})
		}
	}
	if err := e.renderMethod(); err != nil {
		return nil, err
	}
	e.lifecycle()
	e.methods()
	return e.blocks, nil
}

func (e *emitter) prop(p *component.Prop) {
	e.block(func(w *codegen.Writer) {
		w.Line("[Prop]")
		decl := fmt.Sprintf("public %s %s { get; set; }", csType(p.Type, p.Default), p.Name)
		if p.Default != nil {
			decl += " = " + codegen.Expr(e.ctx, p.Default) + ";"
		}
		w.Line("%s", decl)
	})
}

// field writes the field a hook introduces, if any.
func (e *emitter) field(h *hooks.Hook) {
	switch h.Kind {
	case hooks.State, hooks.ClientState:
		attr := "[State]"
		if h.Kind == hooks.ClientState {
			attr = "[ClientState]"
		}
		e.block(func(w *codegen.Writer) {
			w.Line("%s", attr)
			w.Line("%s", e.declaration(h.Name, h.Init))
		})
	case hooks.Markdown:
		e.block(func(w *codegen.Writer) {
			w.Line("[Markdown]")
			w.Line("[State]")
			w.Line("private string %s = %s;", h.Name, e.initOr(h.Init, `""`))
		})
	case hooks.Toggle:
		e.block(func(w *codegen.Writer) {
			w.Line("[State]")
			w.Line("private bool %s = %s;", h.Name, e.initOr(h.Init, "false"))
		})
	case hooks.MvcState:
		e.block(func(w *codegen.Writer) {
			w.Line("[MvcState(%s)]", codegen.Quote(h.Key))
			w.Line("private dynamic %s;", h.Name)
		})
	case hooks.MvcViewModel:
		e.block(func(w *codegen.Writer) {
			w.Line("[MvcViewModel]")
			w.Line("private dynamic %s;", h.Name)
		})
	case hooks.Ref:
		e.block(func(w *codegen.Writer) {
			w.Line("[Ref]")
			w.Line("private dynamic %s = %s;", h.Name, e.initOr(h.Init, "null"))
		})
	case hooks.Validation:
		e.block(func(w *codegen.Writer) {
			args := codegen.Quote(h.Key)
			if h.Options != nil {
				args += ", " + codegen.Expr(e.ctx, h.Options)
			}
			w.Line("[Validation]")
			w.Line("private ValidationField %s = new ValidationField(%s);", h.Name, args)
		})
	case hooks.Dropdown:
		e.block(func(w *codegen.Writer) {
			w.Line("[Dropdown]")
			w.Line("private DropdownState %s = new DropdownState(%s);", h.Name, e.initOr(h.Init, ""))
		})
	case hooks.Modal:
		e.block(func(w *codegen.Writer) {
			w.Line("[Modal]")
			w.Line("private ModalState %s = new ModalState();", h.Name)
		})
	case hooks.Pub:
		e.block(func(w *codegen.Writer) {
			w.Line("[Pub(%s)]", codegen.Quote(h.Key))
			w.Line("private Publisher %s = new Publisher(%s);", h.Name, codegen.Quote(h.Key))
		})
	case hooks.Sub:
		e.block(func(w *codegen.Writer) {
			w.Line("[Sub(%s)]", codegen.Quote(h.Key))
			w.Line("private Subscription %s = new Subscription(%s);", h.Name, codegen.Quote(h.Key))
		})
	case hooks.ServerTask, hooks.PaginatedServerTask:
		typ := "ServerTask<dynamic>"
		if h.Kind == hooks.PaginatedServerTask {
			typ = "PaginatedServerTask<dynamic>"
		}
		e.block(func(w *codegen.Writer) {
			w.Line("private %s %s = new %s();", typ, h.Name, typ)
		})
	}
}

func (e *emitter) declaration(name string, init ast.Expr) string {
	if init == nil {
		return fmt.Sprintf("private dynamic %s;", name)
	}
	return fmt.Sprintf("private %s %s = %s;", csType(component.LiteralType(init), init), name, codegen.Expr(e.ctx, init))
}

func (e *emitter) initOr(init ast.Expr, def string) string {
	if init == nil {
		return def
	}
	return codegen.Expr(e.ctx, init)
}

func (e *emitter) computed(h *hooks.Hook) {
	e.block(func(w *codegen.Writer) {
		w.Line("[Computed%s]", depsArgs(h))
		if h.Callback.ExprBody != nil {
			w.Line("public dynamic %s => %s;", h.Name, codegen.Expr(e.ctx, h.Callback.ExprBody))
			return
		}
		w.Open("public dynamic %s", h.Name)
		w.Open("get")
		codegen.Stmts(w, e.ctx, ast.FuncBody(h.Callback))
		w.Close("")
		w.Close("")
	})
}

func (e *emitter) renderMethod() error {
	tree, err := e.render.Node(e.c.Render)
	if err != nil {
		return err
	}
	e.block(func(w *codegen.Writer) {
		w.Open("protected override VNode Render()")
		codegen.Stmts(w, e.ctx, e.c.Body)
		w.Line("return %s;", tree)
		w.Close("")
	})
	return nil
}

// lifecycle writes effects, tasks and subscription callbacks as
// attributed methods.
func (e *emitter) lifecycle() {
	for i, h := range e.c.HooksOf(hooks.Effect) {
		attr := "[OnUpdated]"
		switch {
		case h.HasDeps && len(h.Deps) == 0:
			attr = "[OnMounted]"
		case h.HasDeps:
			attr = "[OnStateChanged" + depsArgs(h) + "]"
		}
		e.handler(attr, fmt.Sprintf("Effect%d", i), h.Callback)
	}
	for i, h := range e.c.HooksOf(hooks.MicroTask) {
		e.handler("[MicroTask]", fmt.Sprintf("MicroTask%d", i), h.Callback)
	}
	for i, h := range e.c.HooksOf(hooks.MacroTask) {
		delay := "0"
		if h.Delay != nil {
			delay = codegen.Expr(e.ctx, h.Delay)
		}
		e.handler("[MacroTask("+delay+")]", fmt.Sprintf("MacroTask%d", i), h.Callback)
	}
	for _, h := range e.c.HooksOf(hooks.Sub) {
		if h.Callback != nil {
			e.handler("[OnMessage("+codegen.Quote(h.Key)+")]", "On"+title(h.Name)+"Message", h.Callback)
		}
	}
	for _, h := range e.c.HooksOf(hooks.ServerTask, hooks.PaginatedServerTask) {
		e.block(func(w *codegen.Writer) {
			w.Line("[ServerTask(nameof(%s))]", h.Name)
			codegen.Method(w, e.ctx, "private", "Run"+title(h.Name), h.Callback)
		})
	}
	for _, h := range e.c.HooksOf(hooks.Toggle) {
		e.block(func(w *codegen.Writer) {
			w.Open("public void %s()", h.Setter)
			w.Line("SetState(nameof(%s), !%s);", h.Name, h.Name)
			w.Close("")
		})
	}
}

func (e *emitter) handler(attr, name string, fn *ast.Func) {
	e.block(func(w *codegen.Writer) {
		w.Line("%s", attr)
		codegen.Handler(w, e.ctx, "private", name, fn)
	})
}

// methods writes named local functions and inline handlers. A named
// function returns a value unless it is bound to an event or its body
// only performs an action.
func (e *emitter) methods() {
	refs := eventRefs(e.c.Render)
	for _, m := range e.c.Methods {
		e.block(func(w *codegen.Writer) {
			if m.Inline || refs[m.Name] || !returnsValue(m.Func) {
				codegen.Handler(w, e.ctx, "public", m.Name, m.Func)
				return
			}
			codegen.Method(w, e.ctx, "public", m.Name, m.Func)
		})
	}
}

func eventRefs(root ast.Expr) map[string]bool {
	refs := make(map[string]bool)
	ast.Inspect(root, func(n ast.Node) bool {
		if a, ok := n.(*ast.JSXAttr); ok && a.Spread == nil && ast.IsEventAttr(a.Name) {
			if id, ok := a.Expr().(*ast.Ident); ok {
				refs[id.Name] = true
			}
		}
		return true
	})
	return refs
}

func returnsValue(f *ast.Func) bool {
	x := ast.ReturnedExpr(f)
	if x == nil {
		return false
	}
	if f.ExprBody == nil {
		return true
	}
	if a, ok := x.(*ast.Await); ok {
		x = a.X
	}
	switch x.(type) {
	case *ast.Call, *ast.Assign, *ast.Update:
		return false
	}
	return true
}

// depsArgs formats a dependency list as an attribute argument list.
func depsArgs(h *hooks.Hook) string {
	if len(h.Deps) == 0 {
		return ""
	}
	names := make([]string, 0, len(h.Deps))
	for _, d := range h.Deps {
		names = append(names, codegen.Quote(ast.Source(d)))
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// csType maps a prop type to a C# type. Integral numeric literals make
// the type int.
func csType(typ string, init ast.Expr) string {
	switch typ {
	case component.TypeString:
		return "string"
	case component.TypeBoolean:
		return "bool"
	case component.TypeArray:
		return "List<dynamic>"
	case component.TypeNumber:
		if n, ok := init.(*ast.NumberLit); ok && n.Value == math.Trunc(n.Value) && !strings.ContainsAny(n.Raw, ".eE") {
			return "int"
		}
		return "double"
	}
	return "dynamic"
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

const classTemplate = `// <auto-generated>
//     Generated by swig{{if .Source}} from {{.Source}}{{end}}. Do not edit.
// </auto-generated>
{{range .Usings}}using {{.}};
{{end}}
namespace {{.Namespace}}
{
    [Component]
    public partial class {{.Name}} : {{.Base}}
    {
{{join .Members "\n\n"}}
    }
}
`
