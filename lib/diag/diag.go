// Package diag accumulates compiler diagnostics.
//
// Recognized-but-malformed patterns and unsupported expressions do not stop
// compilation; they are recorded here and the caller decides whether any of
// them is fatal. Structural validation failures are returned as *Error.
package diag

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/tliron/commonlog"
)

// Code classifies a diagnostic.
type Code string

const (
	// RecognizedButMalformed: a known hook or pattern has an unexpected shape.
	RecognizedButMalformed Code = "RecognizedButMalformed"
	// UnsupportedExpression: a shape outside every generator table.
	UnsupportedExpression Code = "UnsupportedExpression"
	// StructuralValidationError: a special element is missing a mandatory part.
	StructuralValidationError Code = "StructuralValidationError"
	// TemplateSkipped: a template extractor declined a node.
	TemplateSkipped Code = "TemplateSkipped"
)

// Severity orders diagnostics by how much the caller should care.
type Severity int

const (
	Info Severity = iota
	Warning
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// MarshalText encodes the severity by name in JSON and msgpack reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is one finding about a component.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Code      Code     `json:"code"`
	Component string   `json:"component,omitempty"`
	Message   string   `json:"message"`
	Line      int      `json:"line,omitempty"`
	Column    int      `json:"column,omitempty"`
}

func (d Diagnostic) String() string {
	loc := ""
	if d.Line > 0 {
		loc = fmt.Sprintf("%d:%d: ", d.Line, d.Column)
	}
	comp := ""
	if d.Component != "" {
		comp = d.Component + ": "
	}
	return fmt.Sprintf("%s%s%s [%s] %s", loc, comp, d.Severity, d.Code, d.Message)
}

// List collects diagnostics for one component. The zero value is usable;
// a nil *List silently drops everything. A List is safe for concurrent use
// by the template extractors.
type List struct {
	Component string

	mu    sync.Mutex
	items []Diagnostic
	log   commonlog.Logger
}

// NewList returns a list that tags entries with the component name and
// mirrors them to the named logger.
func NewList(component string, logger string) *List {
	return &List{Component: component, log: commonlog.GetLogger(logger)}
}

// Add records a diagnostic at the node's position.
func (l *List) Add(sev Severity, code Code, at ast.Node, format string, args ...any) {
	if l == nil {
		return
	}
	d := Diagnostic{
		Severity:  sev,
		Code:      code,
		Component: l.Component,
		Message:   fmt.Sprintf(format, args...),
	}
	if at != nil {
		p := at.Position()
		d.Line, d.Column = p.Line, p.Column
	}
	l.mu.Lock()
	l.items = append(l.items, d)
	l.mu.Unlock()
	if l.log != nil {
		switch sev {
		case Info:
			l.log.Debugf("%s", d)
		case Warning:
			l.log.Warningf("%s", d)
		default:
			l.log.Errorf("%s", d)
		}
	}
}

// Warn records a warning.
func (l *List) Warn(code Code, at ast.Node, format string, args ...any) {
	l.Add(Warning, code, at, format, args...)
}

// Note records an informational diagnostic.
func (l *List) Note(code Code, at ast.Node, format string, args ...any) {
	l.Add(Info, code, at, format, args...)
}

// Merge appends another list's entries.
func (l *List) Merge(other *List) {
	if l == nil || other == nil {
		return
	}
	items := other.Items()
	l.mu.Lock()
	l.items = append(l.items, items...)
	l.mu.Unlock()
}

// Items returns the diagnostics sorted by position, stable for equal
// positions.
func (l *List) Items() []Diagnostic {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	l.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Count returns how many diagnostics have at least the given severity.
func (l *List) Count(min Severity) int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, d := range l.items {
		if d.Severity >= min {
			n++
		}
	}
	return n
}

// Escalate promotes every warning with the given code to an error.
func (l *List) Escalate(code Code) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].Code == code && l.items[i].Severity == Warning {
			l.items[i].Severity = Fatal
		}
	}
}

// ErrStructural is the sentinel wrapped by structural validation errors.
var ErrStructural = errors.New("swig: structural validation error")

// Error is a fatal, per-component compile error.
type Error struct {
	Code      Code
	Component string
	Pos       ast.Pos
	Message   string
}

// Structural returns a StructuralValidationError for the node.
func Structural(component string, at ast.Node, format string, args ...any) *Error {
	e := &Error{Code: StructuralValidationError, Component: component, Message: fmt.Sprintf(format, args...)}
	if at != nil {
		e.Pos = at.Position()
	}
	return e
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %d:%d: %s", e.Component, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Message)
}

// Unwrap exposes the sentinel so errors.Is(err, ErrStructural) works.
func (e *Error) Unwrap() error {
	if e.Code == StructuralValidationError {
		return ErrStructural
	}
	return nil
}
