// Package ast defines the input tree consumed by the swig compiler.
//
// The upstream parser is an external collaborator; this package only fixes
// the node shapes the compiler understands. Every node kind is a concrete
// struct and the Expr, Stmt and Pattern interfaces are closed by unexported
// marker methods, so a type switch over them is the whole dispatch table.
package ast

// Pos is a source location reported by the upstream parser.
// The zero Pos means the location is unknown.
type Pos struct {
	Line   int
	Column int
	Offset int
}

// Node is implemented by every AST node.
type Node interface {
	Position() Pos
	node()
}

// Expr is an expression node, including JSX nodes.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// Pattern is a binding target: an identifier or a destructuring pattern.
type Pattern interface {
	Node
	pattern()
}

// Loc is embedded by all nodes to carry their position.
type Loc struct {
	At Pos
}

func (l Loc) Position() Pos { return l.At }
func (Loc) node()           {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Ident is an identifier reference. It doubles as the simplest Pattern.
type Ident struct {
	Loc
	Name string
}

// StringLit is a string literal with its cooked value.
type StringLit struct {
	Loc
	Value string
}

// NumberLit is a numeric literal. Raw preserves the source spelling.
type NumberLit struct {
	Loc
	Value float64
	Raw   string
}

// BoolLit is true or false.
type BoolLit struct {
	Loc
	Value bool
}

// NullLit is the null literal.
type NullLit struct {
	Loc
}

// TemplateLit is a backtick string. len(Quasis) == len(Exprs)+1.
type TemplateLit struct {
	Loc
	Quasis []string
	Exprs  []Expr
}

// ArrayLit is an array literal. Nil elements are holes.
type ArrayLit struct {
	Loc
	Elements []Expr
}

// ObjectLit is an object literal.
type ObjectLit struct {
	Loc
	Props []*Property
}

// Property is one entry of an object literal. When Spread is set the entry
// is `...Spread` and the other fields are empty. Computed holds the key
// expression of `[k]: v` entries.
type Property struct {
	Loc
	Key       string
	Computed  Expr
	Value     Expr
	Shorthand bool
	Spread    Expr
}

// Member is `Object.Property`, `Object[Index]` or their optional forms.
type Member struct {
	Loc
	Object   Expr
	Property string
	Index    Expr
	Optional bool
}

// Computed reports whether the member uses bracket access.
func (m *Member) Computed() bool { return m.Index != nil }

// Call is a call expression. Optional marks `f?.()`.
type Call struct {
	Loc
	Callee   Expr
	Args     []Expr
	Optional bool
}

// New is `new Callee(Args...)`.
type New struct {
	Loc
	Callee Expr
	Args   []Expr
}

// Unary is a prefix operator other than ++/--.
type Unary struct {
	Loc
	Op string
	X  Expr
}

// Update is ++ or --.
type Update struct {
	Loc
	Op     string
	X      Expr
	Prefix bool
}

// Binary is an arithmetic, comparison or bitwise operator.
type Binary struct {
	Loc
	Op    string
	Left  Expr
	Right Expr
}

// Logical is &&, || or ??.
type Logical struct {
	Loc
	Op    string
	Left  Expr
	Right Expr
}

// Conditional is `Test ? Then : Else`.
type Conditional struct {
	Loc
	Test Expr
	Then Expr
	Else Expr
}

// Assign is an assignment, including compound forms like +=.
type Assign struct {
	Loc
	Op     string
	Target Expr
	Value  Expr
}

// Func is a function expression, arrow function or the body of a function
// declaration. Exactly one of Body and ExprBody is set.
type Func struct {
	Loc
	Name     string
	Params   []*Param
	Body     *Block
	ExprBody Expr
	Async    bool
	Arrow    bool
}

// Param is a function parameter with an optional type annotation.
type Param struct {
	Loc
	Target Pattern
	Type   *TypeRef
}

// Spread is `...X` inside array literals and call arguments.
type Spread struct {
	Loc
	X Expr
}

// Await is `await X`.
type Await struct {
	Loc
	X Expr
}

// ---------------------------------------------------------------------------
// JSX
// ---------------------------------------------------------------------------

// Unsupported stands in for an expression kind the compiler does not model,
// such as a regular expression or a tagged template. Kind is the parser's
// name for it.
type Unsupported struct {
	Loc
	Kind string
}

// JSXElement is `<Name attrs>children</Name>`. Member tag names such as
// React.Fragment are flattened into Name.
type JSXElement struct {
	Loc
	Name        string
	Attrs       []*JSXAttr
	Children    []Expr
	SelfClosing bool
}

// JSXFragment is `<>children</>`.
type JSXFragment struct {
	Loc
	Children []Expr
}

// JSXText is raw text between tags, before whitespace cleanup.
type JSXText struct {
	Loc
	Value string
}

// JSXExprContainer is `{X}`. X is nil for empty containers such as comments.
type JSXExprContainer struct {
	Loc
	X Expr
}

// JSXAttr is one attribute. A nil Value means a bare boolean attribute.
// When Spread is set the attribute is `{...Spread}` and Name is empty.
type JSXAttr struct {
	Loc
	Name   string
	Value  Expr
	Spread Expr
}

// Expr returns the attribute's value expression with any container removed.
func (a *JSXAttr) Expr() Expr {
	if c, ok := a.Value.(*JSXExprContainer); ok {
		return c.X
	}
	return a.Value
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

// ArrayPattern is `[a, b]`. Nil elements are holes.
type ArrayPattern struct {
	Loc
	Elements []Pattern
}

// ObjectPattern is `{a, b: c, d = 1, ...rest}`.
type ObjectPattern struct {
	Loc
	Props []*PatternProp
	Rest  *Ident
}

// PatternProp is `Key: Value = Default` inside an object pattern.
type PatternProp struct {
	Loc
	Key     string
	Value   Pattern
	Default Expr
}

// AssignPattern is `Target = Default`.
type AssignPattern struct {
	Loc
	Target  Pattern
	Default Expr
}

// RestPattern is `...Target`.
type RestPattern struct {
	Loc
	Target Pattern
}

// TypeRef is a simplified type annotation.
//
// Name is one of string, number, boolean, any, array, object, or a type
// reference name. Elem is set for arrays, Members for object type literals.
type TypeRef struct {
	Name    string
	Elem    *TypeRef
	Members []*TypeMember
}

// TypeMember is one member of an object type literal.
type TypeMember struct {
	Name     string
	Type     *TypeRef
	Optional bool
}

// Member returns the named member of an object type literal, or nil.
func (t *TypeRef) Member(name string) *TypeMember {
	if t == nil {
		return nil
	}
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Program is a parsed source file.
type Program struct {
	Loc
	Body []Stmt
}

// VarDecl is a const/let/var declaration.
type VarDecl struct {
	Loc
	Kind  string
	Decls []*Declarator
}

// Declarator is one `Target = Init` entry of a VarDecl.
type Declarator struct {
	Loc
	Target Pattern
	Init   Expr
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Loc
	X Expr
}

// Return is a return statement. X may be nil.
type Return struct {
	Loc
	X Expr
}

// If is an if statement. Else may be nil.
type If struct {
	Loc
	Test Expr
	Then Stmt
	Else Stmt
}

// Block is `{ ... }`.
type Block struct {
	Loc
	Body []Stmt
}

// For is a C-style for loop. Init is a *VarDecl, an *ExprStmt or nil.
type For struct {
	Loc
	Init   Stmt
	Test   Expr
	Update Expr
	Body   Stmt
}

// ForOf is `for (Kind Target of Iter)`; In marks the for-in form.
type ForOf struct {
	Loc
	Kind   string
	Target Pattern
	Iter   Expr
	Body   Stmt
	In     bool
}

// While is a while loop. Do marks do/while, whose body runs before the
// first test.
type While struct {
	Loc
	Test Expr
	Body Stmt
	Do   bool
}

// Try is try/catch/finally. Handler and Finalizer may be nil.
type Try struct {
	Loc
	Block     *Block
	Param     Pattern
	Handler   *Block
	Finalizer *Block
}

// Throw is a throw statement.
type Throw struct {
	Loc
	X Expr
}

// Break is a break statement.
type Break struct {
	Loc
}

// Continue is a continue statement.
type Continue struct {
	Loc
}

// Empty is a lone semicolon.
type Empty struct {
	Loc
}

// UnsupportedStmt stands in for a statement kind the compiler does not
// model, such as switch or labeled statements. Kind is the parser's name
// for it.
type UnsupportedStmt struct {
	Loc
	Kind string
}

// FuncDecl is a named function declaration.
type FuncDecl struct {
	Loc
	Func *Func
}

// Import is an import declaration.
type Import struct {
	Loc
	Source     string
	Specifiers []*ImportSpec
}

// ImportSpec is one imported binding.
type ImportSpec struct {
	Local     string
	Imported  string
	Default   bool
	Namespace bool
}

// Export wraps an exported declaration or, for `export default expr`, an
// expression.
type Export struct {
	Loc
	Decl    Stmt
	X       Expr
	Default bool
}

// ---------------------------------------------------------------------------
// Marker methods
// ---------------------------------------------------------------------------

func (*Ident) expr()            {}
func (*StringLit) expr()        {}
func (*NumberLit) expr()        {}
func (*BoolLit) expr()          {}
func (*NullLit) expr()          {}
func (*TemplateLit) expr()      {}
func (*ArrayLit) expr()         {}
func (*ObjectLit) expr()        {}
func (*Member) expr()           {}
func (*Call) expr()             {}
func (*New) expr()              {}
func (*Unary) expr()            {}
func (*Update) expr()           {}
func (*Binary) expr()           {}
func (*Logical) expr()          {}
func (*Conditional) expr()      {}
func (*Assign) expr()           {}
func (*Func) expr()             {}
func (*Spread) expr()           {}
func (*Await) expr()            {}
func (*JSXElement) expr()       {}
func (*JSXFragment) expr()      {}
func (*JSXText) expr()          {}
func (*JSXExprContainer) expr() {}
func (*Unsupported) expr()      {}

func (*Ident) pattern()         {}
func (*ArrayPattern) pattern()  {}
func (*ObjectPattern) pattern() {}
func (*AssignPattern) pattern() {}
func (*RestPattern) pattern()   {}

func (*VarDecl) stmt()         {}
func (*ExprStmt) stmt()        {}
func (*Return) stmt()          {}
func (*If) stmt()              {}
func (*Block) stmt()           {}
func (*For) stmt()             {}
func (*ForOf) stmt()           {}
func (*While) stmt()           {}
func (*Try) stmt()             {}
func (*Throw) stmt()           {}
func (*Break) stmt()           {}
func (*Continue) stmt()        {}
func (*Empty) stmt()           {}
func (*UnsupportedStmt) stmt() {}
func (*FuncDecl) stmt()        {}
func (*Import) stmt()          {}
func (*Export) stmt()          {}
