package sched

import (
	"errors"
	"fmt"
)

// InputError is a deck-correctness problem: illegal enum value, missing
// referenced table, invalid name pattern, keyword misuse. It always
// carries the source location of the offending keyword.
type InputError struct {
	Message  string
	Location KeywordLocation
	wrapped  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("Problem with keyword %s\nIn %s line %d\n%s",
		e.Location.Keyword, e.Location.Filename, e.Location.Lineno, e.Message)
}

func (e *InputError) Unwrap() error { return e.wrapped }

// NewInputError builds a structured input error for the given location.
func NewInputError(location KeywordLocation, format string, args ...any) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...), Location: location}
}

// logicError marks a violated programming invariant (a required
// side-channel missing, an impossible enum value). The dispatcher
// re-wraps these with an "Internal error: " prefix so they surface with
// deck location context instead of a bare failure.
type logicError struct {
	msg string
}

func (e *logicError) Error() string { return e.msg }

// NewLogicError builds an internal invariant-violation error.
func NewLogicError(format string, args ...any) error {
	return &logicError{msg: fmt.Sprintf(format, args...)}
}

// IsLogicError reports whether err is (or wraps) an internal invariant
// violation.
func IsLogicError(err error) bool {
	var le *logicError
	return errors.As(err, &le)
}

// AsInputError returns the wrapped *InputError, if any.
func AsInputError(err error) (*InputError, bool) {
	var ie *InputError
	ok := errors.As(err, &ie)
	return ie, ok
}

// wrapHandlerError annotates an escaping handler error with the failing
// keyword's location. Input errors pass through untouched; logic errors
// gain the "Internal error: " prefix; anything else is re-wrapped as an
// input error at the keyword location. The single catch point per
// keyword lives in the dispatcher, so no handler failure is silently
// swallowed.
func wrapHandlerError(err error, location KeywordLocation) error {
	if err == nil {
		return nil
	}
	if _, ok := AsInputError(err); ok {
		return err
	}
	msg := err.Error()
	if IsLogicError(err) {
		msg = "Internal error: " + msg
	}
	return &InputError{Message: msg, Location: location, wrapped: err}
}
