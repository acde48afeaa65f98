// Package errors provides error handling for adaptgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	if err := load(path); err != nil {
//	    return errors.Wrapf(err, "failed to load %s", path)
//	}
//
//	return errors.WithHint(err, "run 'adaptgen validate' to list all problems")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
	Mark           = crdb.Mark
)

// Assertions and panics
var (
	AssertionFailedf    = crdb.AssertionFailedf
	HasAssertionFailure = crdb.HasAssertionFailure
)

// Sentinel errors shared across the pipeline.
// Wrap these with errors.Wrap() or errors.Mark() to add context while preserving the type.
var (
	// ErrStructuralInvariant indicates a rewrite found the tree in a shape it cannot process,
	// e.g. a parameter referenced by zero or several call arguments.
	ErrStructuralInvariant = New("structural invariant violated")

	// ErrValidation indicates generation was refused because the input has annotation errors
	ErrValidation = New("annotation validation failed")

	// ErrUnsupportedFormat indicates an input file with an unknown extension
	ErrUnsupportedFormat = New("unsupported input format")

	// ErrGeneration indicates rendering a module failed
	ErrGeneration = New("code generation failed")
)

// IsStructuralInvariantError checks if an error is or wraps ErrStructuralInvariant
func IsStructuralInvariantError(err error) bool {
	return err != nil && Is(err, ErrStructuralInvariant)
}

// IsValidationError checks if an error is or wraps ErrValidation
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// NewStructuralInvariantError creates a structural-invariant error with a formatted message
func NewStructuralInvariantError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrStructuralInvariant)
}
