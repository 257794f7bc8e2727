package codegen

import (
	"fmt"
	"strings"
)

const indentWith = "    "

// Writer accumulates indented lines of C# source.
type Writer struct {
	lines  []string
	indent int
}

// NewWriter returns a writer starting at the given indent level.
func NewWriter(indent int) *Writer {
	return &Writer{indent: indent}
}

// Line writes one formatted line at the current indent.
func (w *Writer) Line(format string, args ...any) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	w.lines = append(w.lines, strings.Repeat(indentWith, w.indent)+text)
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.lines = append(w.lines, "")
}

// Indent increases the indent level.
func (w *Writer) Indent() { w.indent++ }

// Dedent decreases the indent level.
func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Open writes a line followed by "{" and indents.
func (w *Writer) Open(format string, args ...any) {
	w.Line(format, args...)
	w.Line("{")
	w.Indent()
}

// Close dedents and writes the closing brace with an optional suffix.
func (w *Writer) Close(suffix string) {
	w.Dedent()
	w.Line("}" + suffix)
}

// Lines returns the written lines.
func (w *Writer) Lines() []string { return w.lines }

// String joins the lines with newlines and a trailing newline.
func (w *Writer) String() string {
	if len(w.lines) == 0 {
		return ""
	}
	return strings.Join(w.lines, "\n") + "\n"
}
