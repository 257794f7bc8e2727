// Package templates derives parameterized, re-hydratable templates from a
// component's render tree.
//
// Four extractors (text, loop, structural and expression) read the same
// immutable tree. None of them evaluates code: a value is either bound to a
// state path, described by a whitelisted transform, or marked complex so the
// runtime falls back to a full render.
package templates

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Complex is the binding recorded for values that cannot be templated.
const Complex = "__complex__"

// Type classifies a text or attribute template.
type Type string

const (
	Static      Type = "static"
	Dynamic     Type = "dynamic"
	Conditional Type = "conditional"
	Transformed Type = "transform"
	Nullable    Type = "nullable"
	Attribute   Type = "attribute"
	ComplexType Type = "complex"
)

// Transform is a side-effect-free operation a runtime can apply to a bound
// value.
type Transform struct {
	Type   string `json:"type"`
	Method string `json:"method,omitempty"`
	Args   []any  `json:"args,omitempty"`
	Steps  []Step `json:"steps,omitempty"`
}

// Step is one arithmetic operation with a literal operand. Reverse puts the
// operand on the left, as in `10 - x`.
type Step struct {
	Op      string  `json:"op"`
	Operand float64 `json:"operand"`
	Reverse bool    `json:"reverse,omitempty"`
}

// Template is a text or attribute template. Braces in literal text are
// doubled, so only {n} placeholders are single.
type Template struct {
	Key                  string            `json:"-"`
	Path                 []int             `json:"path"`
	Template             string            `json:"template"`
	Bindings             []string          `json:"bindings"`
	Slots                []int             `json:"slots"`
	Type                 Type              `json:"type"`
	ConditionalTemplates map[string]string `json:"conditionalTemplates,omitempty"`
	Transform            *Transform        `json:"transform,omitempty"`
	Nullable             bool              `json:"nullable,omitempty"`
	Attribute            string            `json:"attribute,omitempty"`
}

// Shape is a simplified render-tree node used by loop item templates and
// structural branches.
type Shape struct {
	Type           string               `json:"type"`
	Tag            string               `json:"tag,omitempty"`
	Props          map[string]string    `json:"props,omitempty"`
	PropsTemplates map[string]*Template `json:"propsTemplates,omitempty"`
	Children       []*Shape             `json:"children,omitempty"`
	Text           *Template            `json:"text,omitempty"`
	Loop           *LoopTemplate        `json:"loop,omitempty"`
	Condition      string               `json:"condition,omitempty"`
	Branches       map[string]*Shape    `json:"branches,omitempty"`
}

// Shape types.
const (
	ShapeElement     = "Element"
	ShapeFragment    = "Fragment"
	ShapeText        = "Text"
	ShapeNull        = "Null"
	ShapeLoop        = "Loop"
	ShapeConditional = "Conditional"
)

// LoopTemplate describes a `.map()` over an array binding.
type LoopTemplate struct {
	Key          string `json:"-"`
	Path         []int  `json:"path"`
	ArrayBinding string `json:"arrayBinding"`
	ItemVar      string `json:"itemVar"`
	IndexVar     string `json:"indexVar,omitempty"`
	KeyBinding   string `json:"keyBinding,omitempty"`
	ItemTemplate *Shape `json:"itemTemplate"`
}

// StructuralTemplate describes a branch between rendered shapes.
type StructuralTemplate struct {
	Key              string            `json:"-"`
	Path             []int             `json:"path"`
	Type             string            `json:"type"`
	ConditionBinding string            `json:"conditionBinding"`
	Branches         map[string]*Shape `json:"branches"`
}

// Structural template types.
const (
	StructuralTernary    = "conditional"
	StructuralLogicalAnd = "logicalAnd"
)

// ExpressionTemplate describes a computed value by transform or formula.
type ExpressionTemplate struct {
	Key       string     `json:"-"`
	Path      []int      `json:"path"`
	Type      string     `json:"type"`
	Template  string     `json:"template"`
	Binding   string     `json:"binding,omitempty"`
	Bindings  []string   `json:"bindings"`
	Transform *Transform `json:"transform,omitempty"`
	Formula   string     `json:"formula,omitempty"`
}

// Expression template types.
const (
	ExprMethodCall = "methodCall"
	ExprProperty   = "property"
	ExprUnary      = "unary"
	ExprArithmetic = "arithmetic"
	ExprFormula    = "formula"
)

// Set holds everything extracted from one render tree.
type Set struct {
	Text        []*Template
	Loops       []*LoopTemplate
	Structural  []*StructuralTemplate
	Expressions []*ExpressionTemplate
}

// Placeholder returns the text of placeholder n.
func Placeholder(n int) string {
	return "{" + strconv.Itoa(n) + "}"
}

// EscapeBraces doubles the braces of literal template text.
func EscapeBraces(s string) string {
	return braceEscaper.Replace(s)
}

var braceEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// Placeholders returns the indices of the {n} placeholders in s, in order,
// and their UTF-16 offsets. Doubled braces are literal.
func Placeholders(s string) (indices []int, slots []int) {
	units := utf16.Encode([]rune(s))
	for i := 0; i < len(units); i++ {
		if units[i] != '{' {
			continue
		}
		if i+1 < len(units) && units[i+1] == '{' {
			i++
			continue
		}
		j := i + 1
		for j < len(units) && units[j] >= '0' && units[j] <= '9' {
			j++
		}
		if j == i+1 || j >= len(units) || units[j] != '}' {
			continue
		}
		n, _ := strconv.Atoi(string(utf16.Decode(units[i+1 : j])))
		indices = append(indices, n)
		slots = append(slots, i)
		i = j
	}
	return indices, slots
}

// Validate checks that bindings match the placeholders one to one, that
// indices run from 0 without gaps and that slots point at them.
func Validate(template string, bindings []string, slots []int) error {
	indices, found := Placeholders(template)
	if len(indices) != len(bindings) {
		return fmt.Errorf("%d placeholders but %d bindings", len(indices), len(bindings))
	}
	for i, n := range indices {
		if n != i {
			return fmt.Errorf("placeholder %d found at position %d", n, i)
		}
	}
	if slots != nil {
		if len(slots) != len(found) {
			return fmt.Errorf("%d slots for %d placeholders", len(slots), len(found))
		}
		for i := range slots {
			if slots[i] != found[i] {
				return fmt.Errorf("slot %d is %d, placeholder is at %d", i, slots[i], found[i])
			}
		}
	}
	return nil
}

// Validate checks the template's placeholder invariants.
func (t *Template) Validate() error {
	return Validate(t.Template, t.Bindings, t.Slots)
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
