package rule

import (
	"errors"
	"fmt"
)

// ParseError reports a rule string that could not be parsed or that names a
// rule the search cannot handle.
type ParseError struct {
	// Code identifies the error category.
	Code ParseErrorCode

	// Rule is the offending rule string.
	Rule string

	// Message is a human-readable description.
	Message string
}

// ParseErrorCode categorizes rule errors.
type ParseErrorCode string

const (
	// ErrCodeInvalidSyntax indicates the string matches no known notation.
	ErrCodeInvalidSyntax ParseErrorCode = "INVALID_SYNTAX"

	// ErrCodeInvalidCondition indicates a birth or survival count that does
	// not fit the neighborhood.
	ErrCodeInvalidCondition ParseErrorCode = "INVALID_CONDITION"

	// ErrCodeIntegerOverflow indicates a numeric field too large to handle.
	ErrCodeIntegerOverflow ParseErrorCode = "INTEGER_OVERFLOW"

	// ErrCodeTooFewStates indicates a Generations state count below 2.
	ErrCodeTooFewStates ParseErrorCode = "TOO_FEW_STATES"

	// ErrCodeUnsupported indicates a well-formed rule the search cannot
	// handle: B0, hexagonal neighborhoods, or more than two states.
	ErrCodeUnsupported ParseErrorCode = "UNSUPPORTED_RULE"
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: %s (rule=%q)", e.Code, e.Message, e.Rule)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupported returns true if the error marks a parseable but unsupported
// rule. Uses errors.As to handle wrapped errors.
func IsUnsupported(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeUnsupported
	}
	return false
}

// IsSyntaxError returns true if the error marks an unparseable rule string.
// Uses errors.As to handle wrapped errors.
func IsSyntaxError(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeInvalidSyntax
	}
	return false
}
