package directive

import (
	"errors"
	"fmt"
	"go/token"
)

// Sentinel errors for the directive parser.
// Use errors.Is() to check for these error types.
var (
	// ErrMissingName indicates a directive without a literal name.
	ErrMissingName = errors.New("expected an identifier")

	// ErrMissingArgument indicates a directive that ends before its literal.
	ErrMissingArgument = errors.New("unexpected end of arguments, expected a literal")

	// ErrNotALiteral indicates a directive argument that is not a literal.
	ErrNotALiteral = errors.New("expected a literal")

	// ErrUnsupportedLiteral indicates a literal of an unsupported kind,
	// or an unknown directive verb.
	ErrUnsupportedLiteral = errors.New("expected a string, byte string or C string literal")

	// ErrTrailingTokens indicates input after the literal.
	ErrTrailingTokens = errors.New("unexpected tokens")

	// ErrDuplicateName indicates two directives declaring the same name.
	ErrDuplicateName = errors.New("duplicate literal name")
)

// ParseError represents a rejected directive. It wraps a sentinel error with
// the source position of the offending token, so diagnostics come out in
// compiler style and the build can stop at the exact spot.
type ParseError struct {
	Err    error          // Underlying sentinel error
	Pos    token.Position // Position of the offending token
	Detail string         // Offending token text, if any
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (near %q)", e.Pos, e.Err.Error(), e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError creates a ParseError at a source position.
func newParseError(sentinel error, pos token.Position, detail string) error {
	return &ParseError{
		Err:    sentinel,
		Pos:    pos,
		Detail: detail,
	}
}
