package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Kinds
// =============================================================================

var (
	// ErrInvalidField is returned when a field is outside its representable
	// domain (non-finite values, months outside 1..12 where a canonical month
	// is required).
	ErrInvalidField = errors.New("invalid field")

	// ErrTemplateValueCountMismatch is the parent kind of both count errors.
	ErrTemplateValueCountMismatch = errors.New("template/value count mismatch")

	// ErrTooManyValues is returned when more numbers were supplied than the
	// template names.
	ErrTooManyValues = fmt.Errorf("too many values: %w", ErrTemplateValueCountMismatch)

	// ErrTooManyParameters is returned when the template names more fields
	// than numbers were supplied.
	ErrTooManyParameters = fmt.Errorf("too many parameters: %w", ErrTemplateValueCountMismatch)

	// ErrUnsupportedOperand is returned when arithmetic or comparison gets a
	// value that is neither an Instant nor a number.
	ErrUnsupportedOperand = errors.New("unsupported operand")

	// ErrInvalidAnchorValue is returned when a drift/anchor is neither a number
	// nor an Instant.
	ErrInvalidAnchorValue = errors.New("invalid anchor value")

	// ErrDivisionByZero is returned by divide, floor-divide and modulo when the
	// divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Error is a structured engine error. It records which operation detected the
// problem, the offending value, the template or context involved, and a hint
// on how to fix the input.
type Error struct {
	Kind    error
	Op      string
	Value   any
	Context string
	Hint    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Value != nil {
		fmt.Fprintf(&b, " (value %v)", e.Value)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " [%s]", e.Context)
	}
	if e.Hint != "" {
		b.WriteString("; ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Unwrap exposes the kind so errors.Is works against the sentinels above.
func (e *Error) Unwrap() error {
	return e.Kind
}

// NewError builds an *Error.
func NewError(kind error, op string, value any, context, hint string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Value:   value,
		Context: context,
		Hint:    hint,
	}
}

// KindName returns a short stable name for the kind of err, suitable for API
// error codes. It returns "" for errors that are not engine errors.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrTooManyValues):
		return "TOO_MANY_VALUES"
	case errors.Is(err, ErrTooManyParameters):
		return "TOO_MANY_PARAMETERS"
	case errors.Is(err, ErrTemplateValueCountMismatch):
		return "TEMPLATE_VALUE_COUNT_MISMATCH"
	case errors.Is(err, ErrInvalidField):
		return "INVALID_FIELD"
	case errors.Is(err, ErrUnsupportedOperand):
		return "UNSUPPORTED_OPERAND"
	case errors.Is(err, ErrInvalidAnchorValue):
		return "INVALID_ANCHOR_VALUE"
	case errors.Is(err, ErrDivisionByZero):
		return "DIVISION_BY_ZERO"
	}
	return ""
}
