package swig

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
)

func TestSentinelErrors(t *testing.T) {
	errs := []error{
		ErrStructural,
		ErrNoComponents,
		ErrInvalidAST,
		ErrSyntax,
		ErrUnknownFormat,
		ErrMalformedHooks,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsStructural(t *testing.T) {
	err := diag.Structural("Gallery", ast.El("Plugin", nil), "<Plugin> requires a state attribute")
	if !IsStructural(err) {
		t.Errorf("IsStructural(%v) = false", err)
	}
	if !IsStructural(fmt.Errorf("compile: %w", err)) {
		t.Error("IsStructural should see through wrapping")
	}
	if IsStructural(ErrInvalidAST) {
		t.Error("IsStructural(ErrInvalidAST) = true")
	}
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrInvalidAST, true},
		{fmt.Errorf("%w: unexpected end of JSON input", ErrInvalidAST), true},
		{ErrNoComponents, true},
		{ErrSyntax, true},
		{ErrStructural, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsInputError(tt.err); got != tt.want {
			t.Errorf("IsInputError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
