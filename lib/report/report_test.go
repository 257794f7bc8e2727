package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, entries []Entry) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page("src/App.ast.json", entries).Render(context.Background(), &buf))
	return buf.String()
}

func TestPage(t *testing.T) {
	out := render(t, []Entry{
		{
			Component: "Counter",
			Code:      `new VText("a < b")`,
			Manifest:  `{"component": "Counter"}`,
			Diags: []diag.Diagnostic{
				{Severity: diag.Warning, Code: diag.RecognizedButMalformed, Message: "useState: bad", Line: 3, Column: 9},
			},
		},
		{Component: "Broken", Err: errors.New("Broken: <Plugin> requires a literal name")},
	})

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.True(t, strings.HasSuffix(out, "</body></html>"))
	assert.Contains(t, out, "<title>swig: src/App.ast.json</title>")
	assert.Contains(t, out, `<section id="Counter"><h2>Counter</h2>`)
	assert.Contains(t, out, `new VText(&#34;a &lt; b&#34;)`)
	assert.Contains(t, out, `<li class="diag diag-warning"><span class="pos">3:9</span> <code>RecognizedButMalformed</code> useState: bad</li>`)
	assert.Contains(t, out, `<p class="error">Broken: &lt;Plugin&gt; requires a literal name</p>`)
	assert.Equal(t, strings.Count(out, "<section"), strings.Count(out, "</section>"))
}

func TestDiagnosticsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Diagnostics(nil).Render(context.Background(), &buf))
	assert.Empty(t, buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteFile(context.Background(), path, Page("x", nil)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>x</h1>")
}
