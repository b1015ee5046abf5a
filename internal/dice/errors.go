package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidSyntax indicates the dice text does not match the grammar.
var ErrInvalidSyntax = errors.New("invalid dice syntax")

// ErrDivisionByZero indicates an expression divided by a zero total.
var ErrDivisionByZero = errors.New("division by zero")

// ErrOverflow indicates an intermediate total left the int64 range.
var ErrOverflow = errors.New("dice total overflows int64")

// ErrTooManyDice indicates a request asked for more dice than the engine allows.
var ErrTooManyDice = errors.New("too many dice in request")

// SyntaxError describes where a dice string stopped matching the grammar.
type SyntaxError struct {
	Input  string
	Offset int // Byte offset into Input, or -1 when unknown.
	Reason string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e == nil {
		return ErrInvalidSyntax.Error()
	}
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidSyntax, e.Reason)
	}
	return fmt.Sprintf("%s at offset %d: %s", ErrInvalidSyntax, e.Offset, e.Reason)
}

// Is reports whether target is ErrInvalidSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidSyntax
}

// EvalError reports which sub-expression of a request failed.
type EvalError struct {
	Label string
	Err   error
}

func (e *EvalError) Error() string {
	return e.Label + ": " + e.Err.Error()
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
