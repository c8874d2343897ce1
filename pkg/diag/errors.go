package diag

import (
	"errors"
	"fmt"

	"lumen/interpreter-go/pkg/ast"
)

// Kind classifies a checker or evaluator failure.
type Kind int

const (
	UnboundName Kind = iota + 1
	Redefinition
	ArityMismatch
	TypeMismatch
	NonExhaustiveMatch
	InvalidAssignTarget
)

func (k Kind) String() string {
	switch k {
	case UnboundName:
		return "unbound name"
	case Redefinition:
		return "redefinition"
	case ArityMismatch:
		return "arity mismatch"
	case TypeMismatch:
		return "type mismatch"
	case NonExhaustiveMatch:
		return "non-exhaustive match"
	case InvalidAssignTarget:
		return "invalid assignment target"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Phase records which stage raised the error.
type Phase string

const (
	PhaseTypecheck Phase = "typecheck"
	PhaseRuntime   Phase = "runtime"
)

// Sentinels for errors.Is. A *Error matches the sentinel of its Kind.
var (
	ErrUnboundName         = &Error{Kind: UnboundName}
	ErrRedefinition        = &Error{Kind: Redefinition}
	ErrArityMismatch       = &Error{Kind: ArityMismatch}
	ErrTypeMismatch        = &Error{Kind: TypeMismatch}
	ErrNonExhaustiveMatch  = &Error{Kind: NonExhaustiveMatch}
	ErrInvalidAssignTarget = &Error{Kind: InvalidAssignTarget}
)

// Error is the single error type raised by the checker and the evaluator.
type Error struct {
	Kind    Kind
	Phase   Phase
	Message string
	Span    ast.Span
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same Kind, so callers can test against the sentinels.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// Newf builds an error of the given kind. The phase is filled in by the raising package.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// InPhase stamps err with a phase if it is a *Error without one.
func InPhase(err error, phase Phase) error {
	var de *Error
	if errors.As(err, &de) && de.Phase == "" {
		de.Phase = phase
	}
	return err
}

// At attaches a span to err when it has none yet, keeping the innermost location.
func At(err error, node ast.Node) error {
	if node == nil {
		return err
	}
	var de *Error
	if errors.As(err, &de) && de.Span.IsZero() {
		de.Span = node.Span()
	}
	return err
}

// KindOf extracts the Kind of err, or 0 when err is not a *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// Describe formats err with its phase prefix and location, in the style of CLI diagnostics.
func Describe(err error) string {
	var de *Error
	if !errors.As(err, &de) {
		return err.Error()
	}
	prefix := ""
	if de.Phase != "" {
		prefix = string(de.Phase) + ": "
	}
	if !de.Span.IsZero() {
		return fmt.Sprintf("%sline %d, column %d: %s", prefix, de.Span.Start.Line, de.Span.Start.Column, de.Error())
	}
	return prefix + de.Error()
}
