package tmpl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant is wrapped by every InvariantError.
	ErrInvariant = errors.New("internal invariant violation")

	ErrInvalidTree       = errors.New("invalid tree")
	ErrNoEnclosingModule = errors.New("no enclosing module")
	ErrNoModuleSet       = errors.New("module is not in a module set")
	ErrModuleNotFound    = errors.New("module not found")
	ErrMixedPaths        = errors.New("absolute and relative module paths")
	ErrDecode            = errors.New("decode error")
	ErrEncode            = errors.New("encode error")
)

// InvariantError is the panic value for programming errors: inconsistent
// grammar tables, bad child indices, nodes with two parents, role
// mismatches. These are never returned as errors.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariant, e.Op, e.Msg)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func invariantf(op, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
