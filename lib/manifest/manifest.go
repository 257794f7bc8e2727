// Package manifest packages a component's templates for the hydration
// runtime and serializes them.
//
// The JSON field names and template keys are read by the runtime and must
// not change. Every map is keyed by template key; all three codecs write
// keys in sorted order so a manifest encodes to the same bytes every time.
package manifest

import (
	"time"

	"github.com/minimact/swig-sub001/lib/templates"
)

// Version is the manifest schema version.
const Version = "1.0"

// Manifest is the template manifest of one component.
type Manifest struct {
	Component   string                                   `json:"component"`
	Version     string                                   `json:"version"`
	GeneratedAt int64                                    `json:"generatedAt"`
	Templates   map[string]*templates.Template           `json:"templates"`
	Loops       map[string]*templates.LoopTemplate       `json:"loops,omitempty"`
	Structural  map[string]*templates.StructuralTemplate `json:"structural,omitempty"`
	Expressions map[string]*templates.ExpressionTemplate `json:"expressions,omitempty"`
}

// Build returns the manifest for the named component. generatedAt is
// recorded in milliseconds; the zero time records 0.
func Build(component string, set *templates.Set, generatedAt time.Time) *Manifest {
	m := &Manifest{
		Component: component,
		Version:   Version,
		Templates: make(map[string]*templates.Template),
	}
	if !generatedAt.IsZero() {
		m.GeneratedAt = generatedAt.UnixMilli()
	}
	if set == nil {
		return m
	}
	for _, t := range set.Text {
		m.Templates[t.Key] = t
	}
	for _, l := range set.Loops {
		if m.Loops == nil {
			m.Loops = make(map[string]*templates.LoopTemplate)
		}
		m.Loops[l.Key] = l
	}
	for _, s := range set.Structural {
		if m.Structural == nil {
			m.Structural = make(map[string]*templates.StructuralTemplate)
		}
		m.Structural[s.Key] = s
	}
	for _, e := range set.Expressions {
		if m.Expressions == nil {
			m.Expressions = make(map[string]*templates.ExpressionTemplate)
		}
		m.Expressions[e.Key] = e
	}
	return m
}

// Len returns the number of templates of every kind.
func (m *Manifest) Len() int {
	return len(m.Templates) + len(m.Loops) + len(m.Structural) + len(m.Expressions)
}

// restoreKeys copies map keys back into the templates after decoding.
func (m *Manifest) restoreKeys() {
	for k, t := range m.Templates {
		t.Key = k
	}
	for k, l := range m.Loops {
		l.Key = k
	}
	for k, s := range m.Structural {
		s.Key = k
	}
	for k, e := range m.Expressions {
		e.Key = k
	}
}
