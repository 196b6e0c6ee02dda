// Package errors provides structured error reporting for the reorder packages.
//
// Nothing in the drag-and-drop path returns errors to the host application:
// misconfiguration disables the behavior for one element and panics raised
// by event listeners are recovered by the dispatcher. Both are routed to the
// global [ErrorHandler] so they remain observable.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a binding whose options disable the behavior.
	KindConfig
	// KindSelector indicates a handle selector that failed to parse or match.
	KindSelector
	// KindDispatch indicates a failure while dispatching a tree event.
	KindDispatch
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSelector:
		return "selector"
	case KindDispatch:
		return "dispatch"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrInactive reports options that leave an element inert (nil options
	// or the no-index sentinel).
	ErrInactive = errors.New("binding inactive")
	// ErrNoHandle reports a handle selector that matched no descendant.
	ErrNoHandle = errors.New("handle selector matched no descendant")
)

// ReorderError represents a structured error raised inside the reorder packages.
type ReorderError struct {
	// Op is the operation that failed (e.g., "reorder.Resolve").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Node describes the element involved, if any.
	Node string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReorderError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s [%s] node=%s: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dom.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the reorder packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ReorderError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
