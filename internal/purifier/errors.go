package purifier

import (
	"errors"
	"fmt"
)

// Common purifier errors
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrInvalidInput   = errors.New("invalid URL input")
	ErrPatternCompile = errors.New("pattern compile failure")

	errNoCaptureGroup = errors.New("pattern has no capture group")
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeEmptyInput     ErrorCode = "EMPTY_INPUT"
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrCodePatternCompile ErrorCode = "PATTERN_COMPILE"
)

// Error wraps a purifier failure with the offending input.
type Error struct {
	Code       ErrorCode
	Message    string
	Input      string
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: %q", e.Message, e.Input)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

func emptyInputError(raw string) *Error {
	return &Error{
		Code:       ErrCodeEmptyInput,
		Message:    "Invalid URL input",
		Input:      raw,
		Underlying: ErrEmptyInput,
	}
}

func invalidInputError(raw string, cause error) *Error {
	underlying := ErrInvalidInput
	if cause != nil {
		underlying = fmt.Errorf("%w: %v", ErrInvalidInput, cause)
	}
	return &Error{
		Code:       ErrCodeInvalidInput,
		Message:    "Invalid URL input",
		Input:      raw,
		Underlying: underlying,
	}
}

// PatternError reports an ASIN pattern that could not be compiled.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("compile ASIN pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrPatternCompile, e.Err}
}
