// Package zkerr defines the error taxonomy shared by every core package:
// field algebra, the signal/constraint stores, the evaluator and the
// optimizer all report failures through a single Kind enum so that a host
// can branch on error category without string matching.
package zkerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure. The set is fixed by the specification; do not
// grow it without updating every switch that matches on Kind.
type Kind string

const (
	NotFound                Kind = "not-found"
	AlreadyExists            Kind = "already-exists"
	InvalidType              Kind = "invalid-type"
	InvalidSelector          Kind = "invalid-selector"
	InvalidParameter         Kind = "invalid-parameter"
	BadFunctionReturn        Kind = "bad-function-return"
	Algebra                  Kind = "algebra"
	CannotGenerateConstraint Kind = "cannot-generate-constraint"
	CannotCheckConstraint    Kind = "cannot-check-constraint"
	CannotConvertToSmallInt  Kind = "cannot-convert-to-small-int"
	Parse                    Kind = "parse"
	IO                       Kind = "i/o"
)

// Span is a source-code range, as produced by the external parser.
type Span struct {
	Start int
	End   int
}

// Context is the error-context snapshot described in spec.md §7: the scope
// dump, source span, current file, component and function at the point the
// first error was raised. It is captured once and never overwritten while
// the error unwinds the evaluator's recursive walk.
type Context struct {
	Scope     string
	Span      Span
	File      string
	Component string
	Function  string
}

// Error is a zkerr-flavored error: a Kind, a message, an optional wrapped
// cause and an optional Context snapshot.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context *Context
}

func (e *Error) Error() string {
	if e.Context != nil && e.Context.File != "" {
		return fmt.Sprintf("%s: %s (at %s:%d component=%s)", e.Kind, e.Message, e.Context.File, e.Context.Span.Start, e.Context.Component)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an Error of the given kind with no context yet attached.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message to an existing cause, stored through
// github.com/pkg/errors.WithStack so the Cause carries the call stack at the
// point of wrapping (printed by %+v on Cause; Error() shows only Kind and
// Message).
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   errors.WithStack(cause),
	}
}

// WithContext returns a copy of err with ctx attached, unless it already
// carries one — the first error on an unwinding path wins.
func WithContext(err error, ctx *Context) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if e.Context != nil {
		return err
	}
	cp := *e
	cp.Context = ctx
	return &cp
}

// Is reports whether err (or a cause in its chain) is a zkerr.Error of kind k.
func Is(err error, k Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == k {
			return true
		}
		err = e.Cause
	}
	return false
}
