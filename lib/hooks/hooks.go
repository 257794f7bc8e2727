// Package hooks recognizes declarative hook calls inside a component body
// and decomposes them into structured descriptors.
//
// Recognition is by callee name against a fixed table. A recognized call
// whose shape does not match its table entry is reported as a
// RecognizedButMalformed warning and yields no descriptor.
package hooks

import (
	"sort"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("swig.hooks")

// Kind identifies a hook.
type Kind string

const (
	State               Kind = "useState"
	ClientState         Kind = "useClientState"
	Computed            Kind = "useComputed"
	Effect              Kind = "useEffect"
	Ref                 Kind = "useRef"
	Markdown            Kind = "useMarkdown"
	Template            Kind = "useTemplate"
	Validation          Kind = "useValidation"
	Toggle              Kind = "useToggle"
	Dropdown            Kind = "useDropdown"
	Modal               Kind = "useModal"
	Pub                 Kind = "usePub"
	Sub                 Kind = "useSub"
	MicroTask           Kind = "useMicroTask"
	MacroTask           Kind = "useMacroTask"
	ServerTask          Kind = "useServerTask"
	PaginatedServerTask Kind = "usePaginatedServerTask"
	MvcState            Kind = "useMvcState"
	MvcViewModel        Kind = "useMvcViewModel"
)

// Hook is one decomposed hook call.
type Hook struct {
	Kind Kind
	Call *ast.Call

	Name   string // bound variable, empty for statement hooks
	Setter string // setter or toggle function for pair-shaped hooks

	Init     ast.Expr   // initial value
	Callback *ast.Func  // effect body, computation, task or handler
	Deps     []ast.Expr // dependency list
	HasDeps  bool       // a dependency array was given, possibly empty
	Key      string     // channel, field, template or MVC property name
	Options  ast.Expr   // options or rules object
	Delay    ast.Expr   // macro task delay
}

// Zone returns the zone of the variable the hook introduces, or "" when it
// introduces nothing a template can bind to.
func (h *Hook) Zone() zone.Zone {
	switch h.Kind {
	case ClientState:
		return zone.Client
	case Markdown:
		return zone.Markdown
	case State, Toggle, MvcState, Computed, Validation, Dropdown, Modal,
		Sub, ServerTask, PaginatedServerTask, MvcViewModel:
		return zone.Server
	}
	return ""
}

// HasSetter reports whether the hook records a state setter.
func (h *Hook) HasSetter() bool {
	return h.Setter != ""
}

type shapeError string

func (e shapeError) Error() string { return string(e) }

type decomposer func(h *Hook, target ast.Pattern, args []ast.Expr) error

var table = map[Kind]decomposer{
	State:               statePair,
	ClientState:         statePair,
	Markdown:            statePair,
	Toggle:              togglePair,
	MvcState:            mvcPair,
	Computed:            computed,
	Effect:              effect,
	Ref:                 ref,
	Template:            template,
	Validation:          validation,
	Dropdown:            dropdown,
	Modal:               bare,
	MvcViewModel:        bare,
	Pub:                 pub,
	Sub:                 sub,
	MicroTask:           microTask,
	MacroTask:           macroTask,
	ServerTask:          serverTask,
	PaginatedServerTask: serverTask,
}

// Names returns the recognized hook names in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for k := range table {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// IsHook reports whether name is a recognized hook.
func IsHook(name string) bool {
	_, ok := table[Kind(name)]
	return ok
}

// Decompose matches call against the hook table. target is the pattern the
// call's result is bound to, or nil for expression statements.
//
// It returns recognized == false when the callee is not a hook. A
// recognized call with the wrong shape records a warning in diags and
// returns a nil hook.
func Decompose(call *ast.Call, target ast.Pattern, diags *diag.List) (h *Hook, recognized bool) {
	name := ast.CalleeName(call)
	fn, ok := table[Kind(name)]
	if !ok {
		return nil, false
	}
	h = &Hook{Kind: Kind(name), Call: call}
	if err := fn(h, target, call.Args); err != nil {
		diags.Warn(diag.RecognizedButMalformed, call, "%s: %v; hook skipped", name, err)
		return nil, true
	}
	log.Debugf("decomposed %s %s", name, h.Name)
	return h, true
}

func pair(h *Hook, target ast.Pattern) error {
	p, ok := target.(*ast.ArrayPattern)
	if !ok || len(p.Elements) != 2 {
		return shapeError("expected a two-element array destructuring")
	}
	value, ok1 := p.Elements[0].(*ast.Ident)
	setter, ok2 := p.Elements[1].(*ast.Ident)
	if !ok1 || !ok2 {
		return shapeError("expected identifiers in the destructuring")
	}
	h.Name, h.Setter = value.Name, setter.Name
	return nil
}

func single(h *Hook, target ast.Pattern) error {
	id, ok := target.(*ast.Ident)
	if !ok {
		return shapeError("expected the result to be bound to a single identifier")
	}
	h.Name = id.Name
	return nil
}

func statePair(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := pair(h, target); err != nil {
		return err
	}
	if len(args) > 0 {
		h.Init = args[0]
	}
	return nil
}

func togglePair(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := statePair(h, target, args); err != nil {
		return err
	}
	if h.Init == nil {
		h.Init = ast.Bool(false)
	}
	return nil
}

func mvcPair(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := pair(h, target); err != nil {
		return err
	}
	key, err := stringArg(args, 0, "property name")
	if err != nil {
		return err
	}
	h.Key = key
	return nil
}

func computed(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := single(h, target); err != nil {
		return err
	}
	fn, err := funcArg(args, 0)
	if err != nil {
		return err
	}
	h.Callback = fn
	return deps(h, args, 1)
}

func effect(h *Hook, _ ast.Pattern, args []ast.Expr) error {
	fn, err := funcArg(args, 0)
	if err != nil {
		return err
	}
	h.Callback = fn
	return deps(h, args, 1)
}

func ref(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := single(h, target); err != nil {
		return err
	}
	if len(args) > 0 {
		h.Init = args[0]
	}
	return nil
}

func template(h *Hook, _ ast.Pattern, args []ast.Expr) error {
	key, err := stringArg(args, 0, "template name")
	if err != nil {
		return err
	}
	h.Key = key
	return objectArg(h, args, 1)
}

func validation(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := single(h, target); err != nil {
		return err
	}
	key, err := stringArg(args, 0, "field name")
	if err != nil {
		return err
	}
	h.Key = key
	return objectArg(h, args, 1)
}

func dropdown(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := single(h, target); err != nil {
		return err
	}
	if len(args) > 0 {
		h.Init = args[0]
	}
	return nil
}

func bare(h *Hook, target ast.Pattern, _ []ast.Expr) error {
	return single(h, target)
}

func pub(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := single(h, target); err != nil {
		return err
	}
	key, err := stringArg(args, 0, "channel")
	if err != nil {
		return err
	}
	h.Key = key
	return nil
}

func sub(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := pub(h, target, args); err != nil {
		return err
	}
	if len(args) > 1 {
		fn, ok := args[1].(*ast.Func)
		if !ok {
			return shapeError("expected a callback function as the second argument")
		}
		h.Callback = fn
	}
	return nil
}

func microTask(h *Hook, _ ast.Pattern, args []ast.Expr) error {
	fn, err := funcArg(args, 0)
	if err != nil {
		return err
	}
	h.Callback = fn
	return nil
}

func macroTask(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := microTask(h, target, args); err != nil {
		return err
	}
	if len(args) > 1 {
		h.Delay = args[1]
	}
	return nil
}

func serverTask(h *Hook, target ast.Pattern, args []ast.Expr) error {
	if err := single(h, target); err != nil {
		return err
	}
	fn, err := funcArg(args, 0)
	if err != nil {
		return err
	}
	h.Callback = fn
	return objectArg(h, args, 1)
}

func funcArg(args []ast.Expr, i int) (*ast.Func, error) {
	if len(args) <= i {
		return nil, shapeError("missing function argument")
	}
	fn, ok := args[i].(*ast.Func)
	if !ok {
		return nil, shapeError("expected a function argument")
	}
	return fn, nil
}

func stringArg(args []ast.Expr, i int, what string) (string, error) {
	if len(args) <= i {
		return "", shapeError("missing " + what)
	}
	s, ok := args[i].(*ast.StringLit)
	if !ok {
		return "", shapeError("expected a string literal " + what)
	}
	return s.Value, nil
}

func objectArg(h *Hook, args []ast.Expr, i int) error {
	if len(args) <= i {
		return nil
	}
	if _, ok := args[i].(*ast.ObjectLit); !ok {
		return shapeError("expected an object literal")
	}
	h.Options = args[i]
	return nil
}

func deps(h *Hook, args []ast.Expr, i int) error {
	if len(args) <= i {
		return nil
	}
	arr, ok := args[i].(*ast.ArrayLit)
	if !ok {
		return shapeError("expected a dependency array")
	}
	h.Deps = arr.Elements
	h.HasDeps = true
	return nil
}
