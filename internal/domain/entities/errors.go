package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the workflow engine unwraps to one of these,
// so callers branch with errors.Is and never on message text.
var (
	ErrValidation             = errors.New("validation error")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrTerminalState          = errors.New("terminal state")
	ErrJustificationRequired  = errors.New("justification required")
	ErrMissingReason          = errors.New("missing reason")
	ErrPreconditionFailed     = errors.New("precondition failed")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrNegativeStock          = errors.New("negative stock")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrNotFound               = errors.New("not found")
	ErrAlreadyExists          = errors.New("already exists")
	ErrPermissionDenied       = errors.New("permission denied")
)

// DomainError carries a kind, a human readable message and, for row-level
// failures, the offending identifiers.
type DomainError struct {
	Kind    error
	Message string
	Fields  []string
}

func (e *DomainError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Fields) > 0 {
		msg += " [" + strings.Join(e.Fields, ", ") + "]"
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NewDomainError(kind error, format string, args ...any) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) error {
	return NewDomainError(ErrValidation, format, args...)
}

func InvalidTransition(format string, args ...any) error {
	return NewDomainError(ErrInvalidStateTransition, format, args...)
}

func NotFound(what, id string) error {
	return NewDomainError(ErrNotFound, "%s %q", what, id)
}

func ConcurrentModification(what, id string) error {
	return NewDomainError(ErrConcurrentModification, "%s %q was modified concurrently", what, id)
}

// MissingReasons reports every row that needs a reason before it may proceed.
func MissingReasons(message string, ids []string) error {
	return &DomainError{Kind: ErrMissingReason, Message: message, Fields: ids}
}
