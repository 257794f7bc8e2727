package codegen

import (
	"strings"

	"github.com/minimact/swig-sub001/lib/ast"
)

var mathFuncs = map[string]string{
	"max":   "Max",
	"min":   "Min",
	"floor": "Floor",
	"ceil":  "Ceiling",
	"round": "Round",
	"abs":   "Abs",
	"pow":   "Pow",
	"sqrt":  "Sqrt",
	"sign":  "Sign",
	"trunc": "Truncate",
}

// stringMethods are translated one-to-one on any receiver.
var stringMethods = map[string]string{
	"toUpperCase": "ToUpper",
	"toLowerCase": "ToLower",
	"trim":        "Trim",
	"trimStart":   "TrimStart",
	"trimEnd":     "TrimEnd",
	"includes":    "Contains",
	"startsWith":  "StartsWith",
	"endsWith":    "EndsWith",
	"indexOf":     "IndexOf",
	"lastIndexOf": "LastIndexOf",
	"split":       "Split",
	"replace":     "Replace",
	"toString":    "ToString",
}

// listMethods become LINQ calls materialized with ToList where the
// JavaScript method returns a new array.
var listMethods = map[string]struct {
	name   string
	toList bool
}{
	"map":       {"Select", true},
	"filter":    {"Where", true},
	"find":      {"FirstOrDefault", false},
	"findIndex": {"FindIndex", false},
	"some":      {"Any", false},
	"every":     {"All", false},
	"forEach":   {"ForEach", false},
	"push":      {"Add", false},
	"concat":    {"Concat", true},
}

func (g *gen) call(c *ast.Call) string {
	if name := ast.CalleeName(c); name != "" {
		if s, ok := g.ctx.Setters[name]; ok {
			return g.setterCall(c, s)
		}
		if out, ok := g.globalCall(name, c.Args); ok {
			return out
		}
	}
	if recv, method, args, ok := ast.MethodCall(c); ok {
		if id, isIdent := recv.(*ast.Ident); isIdent {
			if out, ok := g.staticCall(id.Name, method, args); ok {
				return out
			}
		}
		if out, ok := g.methodCall(recv, method, args); ok {
			return out
		}
	}
	if c.Optional {
		return g.operand(c.Callee) + "?.Invoke(" + g.args(c.Args) + ")"
	}
	return g.operand(c.Callee) + "(" + g.args(c.Args) + ")"
}

// setterCall rewrites a recorded state setter into a SetState call.
// Functional updaters with a single returned expression are inlined with
// their parameter bound to the current state value.
func (g *gen) setterCall(c *ast.Call, s Setter) string {
	wrap := func(value string) string {
		return "SetState(nameof(" + s.State + "), " + value + ")"
	}
	if len(c.Args) == 0 {
		if s.Toggle {
			return wrap("!" + s.State)
		}
		return wrap("null")
	}

	arg := c.Args[0]
	fn, ok := arg.(*ast.Func)
	if !ok {
		return wrap(g.expr(arg))
	}
	if len(fn.Params) > 1 {
		g.ctx.unsupported(fn, "state updater with more than one parameter")
		return wrap("null")
	}
	body := fn.ExprBody
	if body == nil && fn.Body != nil && len(fn.Body.Body) == 1 {
		body = ast.ReturnedExpr(fn)
	}
	if body == nil {
		return wrap("((" + lambdaType(fn) + ")(" + g.lambda(fn) + "))(" + s.State + ")")
	}
	inner := g.ctx
	if len(fn.Params) == 1 {
		if id, ok := fn.Params[0].Target.(*ast.Ident); ok {
			inner = inner.WithAlias(id.Name, s.State)
		}
	}
	return wrap((&gen{ctx: inner}).expr(body))
}

func (g *gen) globalCall(name string, args []ast.Expr) (string, bool) {
	arg := func() string {
		if len(args) == 0 {
			return "null"
		}
		return g.expr(args[0])
	}
	switch name {
	case "String":
		if len(args) == 0 {
			return `""`, true
		}
		return "Convert.ToString(" + arg() + ")", true
	case "Number", "parseFloat":
		return "Convert.ToDouble(" + arg() + ")", true
	case "parseInt":
		return "Convert.ToInt32(" + arg() + ")", true
	case "Boolean":
		return "MinimactHelpers.ToBool(" + arg() + ")", true
	case "isNaN":
		return "double.IsNaN(Convert.ToDouble(" + arg() + "))", true
	}
	return "", false
}

func (g *gen) staticCall(object, method string, args []ast.Expr) (string, bool) {
	switch object {
	case "Math":
		if method == "random" {
			return "Random.Shared.NextDouble()", true
		}
		name, ok := mathFuncs[method]
		if !ok {
			return "", false
		}
		if (method == "max" || method == "min") && len(args) > 2 {
			// Math.Max only takes two operands.
			out := g.expr(args[len(args)-1])
			for i := len(args) - 2; i >= 0; i-- {
				out = "Math." + name + "(" + g.expr(args[i]) + ", " + out + ")"
			}
			return out, true
		}
		return "Math." + name + "(" + g.args(args) + ")", true
	case "console":
		switch method {
		case "log", "info", "debug", "warn", "error", "trace":
			if len(args) <= 1 {
				return "Console.WriteLine(" + g.args(args) + ")", true
			}
			return "Console.WriteLine(string.Join(\" \", " + g.args(args) + "))", true
		}
	case "JSON":
		switch method {
		case "stringify":
			return "JsonConvert.SerializeObject(" + g.args(args) + ")", true
		case "parse":
			return "JsonConvert.DeserializeObject<dynamic>(" + g.args(args) + ")", true
		}
	case "Date":
		if method == "now" {
			return "DateTimeOffset.Now.ToUnixTimeMilliseconds()", true
		}
	}
	return "", false
}

func (g *gen) methodCall(recv ast.Expr, method string, args []ast.Expr) (string, bool) {
	obj := g.operand(recv)
	switch method {
	case "toFixed":
		digits := "0"
		if len(args) > 0 {
			if n, ok := args[0].(*ast.NumberLit); ok {
				return obj + `.ToString("F` + ast.FormatNumber(n) + `")`, true
			}
			digits = g.expr(args[0])
			return obj + `.ToString("F" + ` + digits + `)`, true
		}
		return obj + `.ToString("F` + digits + `")`, true
	case "join":
		sep := `","`
		if len(args) > 0 {
			sep = g.expr(args[0])
		}
		return "string.Join(" + sep + ", " + obj + ")", true
	case "padStart", "padEnd":
		name := "PadLeft"
		if method == "padEnd" {
			name = "PadRight"
		}
		return obj + "." + name + "(" + g.padArgs(args) + ")", true
	case "substring":
		if len(args) == 2 {
			start := g.expr(args[0])
			return obj + ".Substring(" + start + ", " + g.sub(args[1], 11, false) + " - " + g.sub(args[0], 11, true) + ")", true
		}
		return obj + ".Substring(" + g.args(args) + ")", true
	case "slice":
		if g.isString(recv) {
			return g.methodCall(recv, "substring", args)
		}
		switch len(args) {
		case 0:
			return obj + ".ToList()", true
		case 1:
			return obj + ".Skip(" + g.expr(args[0]) + ").ToList()", true
		default:
			return obj + ".Skip(" + g.expr(args[0]) + ").Take(" + g.sub(args[1], 11, false) + " - " + g.sub(args[0], 11, true) + ").ToList()", true
		}
	case "reduce":
		if len(args) == 2 {
			return obj + ".Aggregate(" + g.expr(args[1]) + ", " + g.expr(args[0]) + ")", true
		}
		return obj + ".Aggregate(" + g.args(args) + ")", true
	case "sort":
		if len(args) == 0 {
			return obj + ".OrderBy(x => x).ToList()", true
		}
	case "reverse":
		return obj + ".AsEnumerable().Reverse().ToList()", true
	}

	if name, ok := stringMethods[method]; ok {
		return obj + "." + name + "(" + g.args(args) + ")", true
	}
	if m, ok := listMethods[method]; ok {
		out := obj + "." + m.name + "(" + g.args(args) + ")"
		if m.toList {
			out += ".ToList()"
		}
		return out, true
	}
	return "", false
}

// padArgs converts a single-character pad string into a char literal.
func (g *gen) padArgs(args []ast.Expr) string {
	if len(args) == 2 {
		if s, ok := args[1].(*ast.StringLit); ok && len([]rune(s.Value)) == 1 {
			ch := s.Value
			if ch == `'` || ch == `\` {
				ch = `\` + ch
			}
			return g.expr(args[0]) + ", '" + ch + "'"
		}
	}
	return g.args(args)
}

func (g *gen) args(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.(*ast.Spread); ok {
			g.ctx.unsupported(s, "spread argument")
			parts[i] = g.expr(s.X)
			continue
		}
		parts[i] = g.expr(a)
	}
	return strings.Join(parts, ", ")
}

func (g *gen) newExpr(n *ast.New) string {
	name := ""
	if id, ok := n.Callee.(*ast.Ident); ok {
		name = id.Name
	}
	switch name {
	case "Date":
		switch len(n.Args) {
		case 0:
			return "DateTime.Now"
		case 1:
			return "DateTime.Parse(Convert.ToString(" + g.expr(n.Args[0]) + "))"
		}
		return "new DateTime(" + g.args(n.Args) + ")"
	case "Error", "TypeError", "RangeError":
		return "new Exception(" + g.args(n.Args) + ")"
	case "Map":
		return "new Dictionary<dynamic, dynamic>()"
	case "Set":
		if len(n.Args) == 1 {
			return "new HashSet<dynamic>(" + g.expr(n.Args[0]) + ")"
		}
		return "new HashSet<dynamic>()"
	case "Array":
		return "new List<dynamic>()"
	}
	return "new " + g.operand(n.Callee) + "(" + g.args(n.Args) + ")"
}
