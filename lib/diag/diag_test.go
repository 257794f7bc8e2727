package diag

import (
	"errors"
	"sync"
	"testing"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(line, col int) ast.Node {
	return &ast.Ident{Loc: ast.Loc{At: ast.Pos{Line: line, Column: col}}, Name: "x"}
}

func TestListOrdersByPosition(t *testing.T) {
	l := NewList("Counter", "swig.test")
	l.Warn(UnsupportedExpression, at(4, 2), "second")
	l.Note(TemplateSkipped, nil, "unpositioned")
	l.Warn(RecognizedButMalformed, at(2, 8), "first")

	items := l.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "unpositioned", items[0].Message)
	assert.Equal(t, "first", items[1].Message)
	assert.Equal(t, "second", items[2].Message)
	assert.Equal(t, "Counter", items[1].Component)
	assert.Equal(t, "2:8: Counter: warning [RecognizedButMalformed] first", items[1].String())
}

func TestCountAndEscalate(t *testing.T) {
	var l List
	l.Warn(RecognizedButMalformed, nil, "bad hook")
	l.Warn(UnsupportedExpression, nil, "odd")
	l.Note(TemplateSkipped, nil, "skipped")

	assert.Equal(t, 3, l.Count(Info))
	assert.Equal(t, 2, l.Count(Warning))
	assert.Zero(t, l.Count(Fatal))

	l.Escalate(RecognizedButMalformed)
	assert.Equal(t, 1, l.Count(Fatal))
	assert.Equal(t, "error", l.Items()[0].Severity.String())
}

func TestNilList(t *testing.T) {
	var l *List
	l.Warn(UnsupportedExpression, nil, "dropped")
	l.Escalate(UnsupportedExpression)
	assert.Nil(t, l.Items())
	assert.Zero(t, l.Count(Info))
}

func TestMergeConcurrent(t *testing.T) {
	parent := &List{Component: "Page"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := &List{Component: "Page"}
			child.Warn(TemplateSkipped, nil, "n")
			parent.Merge(child)
		}()
	}
	wg.Wait()
	assert.Len(t, parent.Items(), 8)
}

func TestStructuralError(t *testing.T) {
	err := error(Structural("Clock", at(7, 3), "<%s> requires %q", "Plugin", "state"))
	assert.True(t, errors.Is(err, ErrStructural))
	assert.Equal(t, `Clock: 7:3: <Plugin> requires "state"`, err.Error())

	other := &Error{Code: UnsupportedExpression, Component: "Clock", Message: "m"}
	assert.False(t, errors.Is(other, ErrStructural))
	assert.Equal(t, "Clock: m", other.Error())
}

func TestSeverityMarshalText(t *testing.T) {
	b, err := Warning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(b))
}
