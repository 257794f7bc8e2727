package ast

import "strings"

// CleanJSXText applies JSX whitespace rules to raw text between tags.
//
// Lines are trimmed on the sides that touch a line break, lines that become
// empty are dropped and the survivors are joined with a single space. Text
// made only of whitespace and line breaks collapses to "".
func CleanJSXText(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	last := len(lines) - 1

	var kept []string
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", " ")
		if i != 0 {
			line = strings.TrimLeft(line, " ")
		}
		if i != last {
			line = strings.TrimRight(line, " ")
		}
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}

// MeaningfulChildren drops children that render nothing: whitespace-only
// text and empty expression containers. Indices into the returned slice are
// the child positions used by template paths.
func MeaningfulChildren(children []Expr) []Expr {
	out := make([]Expr, 0, len(children))
	for _, c := range children {
		switch x := c.(type) {
		case *JSXText:
			if CleanJSXText(x.Value) == "" {
				continue
			}
		case *JSXExprContainer:
			if x.X == nil {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
