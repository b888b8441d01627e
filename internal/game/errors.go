package game

import (
	"errors"
	"fmt"
)

// Code is a machine-readable rule error code.
type Code string

const (
	// CodeUnknown is returned by CodeOf for errors that are not rule errors.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidSelection: wrong suit, face, phase or owner for a card choice.
	CodeInvalidSelection Code = "INVALID_SELECTION"
	// CodeNoSelection: purchase attempted with no payment cards.
	CodeNoSelection Code = "NO_SELECTION"
	// CodeInsufficientValue: payment total below cost.
	CodeInsufficientValue Code = "INSUFFICIENT_VALUE"
	// CodeIllegalTransition: command invoked outside its phase.
	CodeIllegalTransition Code = "ILLEGAL_TRANSITION"
	// CodeEmptyTarget: bonus choice requested with no options. Unreachable
	// through legal play.
	CodeEmptyTarget Code = "EMPTY_TARGET"
)

// RuleError is a recoverable command failure. The engine state is unchanged
// whenever a command returns one.
type RuleError struct {
	Code    Code
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches rule errors by code, so errors.Is(err, ErrInsufficientValue)
// holds for any insufficient-value failure.
func (e *RuleError) Is(target error) bool {
	var other *RuleError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidSelection  = &RuleError{Code: CodeInvalidSelection, Message: "invalid selection"}
	ErrNoSelection       = &RuleError{Code: CodeNoSelection, Message: "no cards selected"}
	ErrInsufficientValue = &RuleError{Code: CodeInsufficientValue, Message: "insufficient value"}
	ErrIllegalTransition = &RuleError{Code: CodeIllegalTransition, Message: "illegal transition"}
	ErrEmptyTarget       = &RuleError{Code: CodeEmptyTarget, Message: "no bonus targets"}
)

func newRuleError(code Code, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the rule error code from any error.
func CodeOf(err error) Code {
	var e *RuleError
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
