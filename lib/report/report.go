// Package report renders an HTML page describing a compiled file: the
// generated class, the template manifest and the diagnostics of every
// component.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/templ"
	"github.com/minimact/swig-sub001/lib/diag"
)

// Entry is the report section of one component.
type Entry struct {
	Component string
	Code      string
	Manifest  string // encoded manifest, shown verbatim
	Diags     []diag.Diagnostic
	Err       error
}

// Page returns the report for a source file.
func Page(source string, entries []Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>swig: `)
		sb.WriteString(templ.EscapeString(source))
		sb.WriteString(`</title><style>` + style + `</style></head><body>`)
		sb.WriteString(`<h1>`)
		sb.WriteString(templ.EscapeString(source))
		sb.WriteString(`</h1>`)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		for _, e := range entries {
			if err := Section(e).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// Section renders one component.
func Section(e Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, `<section id="%s"><h2>%s</h2>`, templ.EscapeString(e.Component), templ.EscapeString(e.Component))
		if e.Err != nil {
			sb.WriteString(`<p class="error">`)
			sb.WriteString(templ.EscapeString(e.Err.Error()))
			sb.WriteString(`</p>`)
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if err := Diagnostics(e.Diags).Render(ctx, w); err != nil {
			return err
		}
		sb.Reset()
		if e.Code != "" {
			sb.WriteString(`<h3>Class</h3><pre class="code">`)
			sb.WriteString(templ.EscapeString(e.Code))
			sb.WriteString(`</pre>`)
		}
		if e.Manifest != "" {
			sb.WriteString(`<h3>Manifest</h3><pre class="manifest">`)
			sb.WriteString(templ.EscapeString(e.Manifest))
			sb.WriteString(`</pre>`)
		}
		sb.WriteString(`</section>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// Diagnostics renders a diagnostic list, one row per entry, styled by
// severity.
func Diagnostics(diags []diag.Diagnostic) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(diags) == 0 {
			return nil
		}
		var sb strings.Builder
		sb.WriteString(`<ul class="diagnostics">`)
		for _, d := range diags {
			sb.WriteString(`<li class="diag diag-`)
			sb.WriteString(templ.EscapeString(d.Severity.String()))
			sb.WriteString(`">`)
			if d.Line > 0 {
				fmt.Fprintf(&sb, `<span class="pos">%d:%d</span> `, d.Line, d.Column)
			}
			sb.WriteString(`<code>`)
			sb.WriteString(templ.EscapeString(string(d.Code)))
			sb.WriteString(`</code> `)
			sb.WriteString(templ.EscapeString(d.Message))
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ul>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// WriteFile renders c to the named file.
func WriteFile(ctx context.Context, path string, c templ.Component) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Render(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const style = `body{font-family:sans-serif;margin:2rem}` +
	`pre{background:#f6f8fa;padding:1rem;overflow:auto}` +
	`.diag-error,.error{color:#b00020}.diag-warning{color:#8a6d00}.diag-info{color:#555}`
