package swig

import (
	"errors"

	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/jsx"
	"github.com/minimact/swig-sub001/lib/manifest"
)

// Sentinel errors for compilation.
var (
	ErrStructural     = diag.ErrStructural
	ErrNoComponents   = errors.New("swig: no components found")
	ErrInvalidAST     = errors.New("swig: invalid AST document")
	ErrSyntax         = jsx.ErrSyntax
	ErrUnknownFormat  = manifest.ErrUnknownFormat
	ErrMalformedHooks = errors.New("swig: malformed hook calls")
)

// IsStructural checks if err is a structural validation error.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsInputError checks if err was caused by the input document rather than
// by one of its components.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidAST) || errors.Is(err, ErrSyntax) || errors.Is(err, ErrNoComponents)
}
