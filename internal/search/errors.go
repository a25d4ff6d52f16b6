package search

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid or unsupported search configuration.
//
// It is returned by NewWorld and Config.Validate before any search work
// happens. Contradictions found during the search itself are not errors;
// they are resolved by backtracking.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the offending configuration field, when there is one.
	Field string
}

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeInvalidRule indicates the rule string could not be parsed.
	ErrCodeInvalidRule ConfigErrorCode = "INVALID_RULE"

	// ErrCodeUnsupportedRule indicates the rule parsed but cannot be searched.
	ErrCodeUnsupportedRule ConfigErrorCode = "UNSUPPORTED_RULE"

	// ErrCodeInvalidSize indicates a width, height, or period below one,
	// or a negative diagonal width.
	ErrCodeInvalidSize ConfigErrorCode = "INVALID_SIZE"

	// ErrCodeInvalidMaxPopulation indicates a negative population bound.
	ErrCodeInvalidMaxPopulation ConfigErrorCode = "INVALID_MAX_POPULATION"

	// ErrCodeNotSquare indicates the symmetry, transformation, diagonal
	// width, or search order needs a square world and the world is not one.
	ErrCodeNotSquare ConfigErrorCode = "NOT_SQUARE"

	// ErrCodeHasDiagonalWidth indicates a diagonal width was given together
	// with a symmetry or transformation that cannot respect it.
	ErrCodeHasDiagonalWidth ConfigErrorCode = "HAS_DIAGONAL_WIDTH"

	// ErrCodeInvalidTranslation indicates the translation does not commute
	// with the symmetry.
	ErrCodeInvalidTranslation ConfigErrorCode = "INVALID_TRANSLATION"

	// ErrCodeKnownCellOutOfBounds indicates a known cell lies outside the
	// world or outside the period.
	ErrCodeKnownCellOutOfBounds ConfigErrorCode = "KNOWN_CELL_OUT_OF_BOUNDS"

	// ErrCodeConflictingKnownCells indicates the known cells contradict
	// each other or the rule before the search starts.
	ErrCodeConflictingKnownCells ConfigErrorCode = "CONFLICTING_KNOWN_CELLS"
)

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError returns true if the error is a ConfigError.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsKnownCellConflict returns true if the error reports contradictory known
// cells at construction time.
func IsKnownCellConflict(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeConflictingKnownCells
	}
	return false
}

func newConfigError(code ConfigErrorCode, field, format string, args ...any) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// SerdeError reports a failure to save or restore a search.
type SerdeError struct {
	// Code identifies the error category.
	Code SerdeErrorCode

	// Message is a human-readable description.
	Message string
}

// SerdeErrorCode categorizes save/load errors.
type SerdeErrorCode string

const (
	// ErrCodeVersionMismatch indicates the record was written by an
	// incompatible version of the format.
	ErrCodeVersionMismatch SerdeErrorCode = "VERSION_MISMATCH"

	// ErrCodeCorruptedStream indicates the record could not be decoded.
	ErrCodeCorruptedStream SerdeErrorCode = "CORRUPTED_STREAM"

	// ErrCodeRuleMismatch indicates the record's rule differs from the one
	// its configuration parses to.
	ErrCodeRuleMismatch SerdeErrorCode = "RULE_MISMATCH"

	// ErrCodeOutOfBounds indicates a cell index in the record does not fit
	// the world built from its configuration.
	ErrCodeOutOfBounds SerdeErrorCode = "OUT_OF_BOUNDS"

	// ErrCodeInvalidStack indicates the record's decision stack is not
	// replayable, for example a known-state entry after a decision.
	ErrCodeInvalidStack SerdeErrorCode = "INVALID_STACK"
)

// Error implements the error interface.
func (e *SerdeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSerdeError returns true if the error is a SerdeError.
// Uses errors.As to handle wrapped errors.
func IsSerdeError(err error) bool {
	var se *SerdeError
	return errors.As(err, &se)
}

func newSerdeError(code SerdeErrorCode, format string, args ...any) *SerdeError {
	return &SerdeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
