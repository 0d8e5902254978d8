package backends

import "github.com/pkg/errors"

// Sentinel error kinds for violations detected by the operation library and
// the contexts. They are raised by panicking with a wrapping error (see
// Raise), so callers can recover them with exceptions.TryCatch[error] and
// identify the kind with errors.Is.
var (
	// ErrShapeMismatch: operand sizes or dimensionalities disagree where
	// equality is required.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrTypeMismatch: operand element types disagree where equality is
	// required.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidArgument: an operand's layout dimensionality does not match
	// what the operation requires.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotImplemented: the operation intentionally has no core
	// implementation.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNoContext is fatal: no execution context accepted an operation it
	// was asked to perform, or no context is ambient at all. It indicates a
	// missing context registration, not a user error, and the compilation
	// unit should be aborted.
	ErrNoContext = errors.New("no execution context accepted the operation")
)

// Raise panics with an error that wraps the given kind, annotated with the
// formatted message and a stack trace. Violations are raised before any
// partial mutation of the operands.
func Raise(kind error, format string, args ...any) {
	panic(errors.Wrapf(kind, format, args...))
}
