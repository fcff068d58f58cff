package xpdf

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a failure of an xpdf tool.
type ErrorKind int

const (
	// KindProcessing is an unexpected failure while handling a request.
	KindProcessing ErrorKind = iota
	// KindValidation means the request failed a precondition.
	KindValidation
	// KindExecution means the executable exited with a non-zero code.
	KindExecution
	// KindTimeout means the executable did not finish within the timeout.
	KindTimeout
	// KindRuntime covers provisioning and configuration failures.
	KindRuntime
)

// String returns a string representation of the ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindExecution:
		return "EXECUTION"
	case KindTimeout:
		return "TIMEOUT"
	case KindRuntime:
		return "RUNTIME"
	default:
		return "PROCESSING"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrProcessing = &Error{Kind: KindProcessing}
	ErrValidation = &Error{Kind: KindValidation}
	ErrExecution  = &Error{Kind: KindExecution}
	ErrTimeout    = &Error{Kind: KindTimeout}
	ErrRuntime    = &Error{Kind: KindRuntime}
)

// Error is the single error type returned by the xpdf tools.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	// Set for KindExecution. KindTimeout keeps the output captured
	// before the process was killed.
	ExitCode       int    `json:"exit_code,omitempty"`
	StandardOutput string `json:"standard_output,omitempty"`
	ErrorOutput    string `json:"error_output,omitempty"`

	Err error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Kind == KindExecution:
		return fmt.Sprintf("xpdf %s: %s (exit code %d)", e.Kind, e.Message, e.ExitCode)
	case e.Err != nil && e.Err.Error() != e.Message:
		return fmt.Sprintf("xpdf %s: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("xpdf %s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewRuntimeError creates a runtime error, optionally wrapping a cause.
func NewRuntimeError(message string, cause error) *Error {
	return &Error{Kind: KindRuntime, Message: message, Err: cause}
}

// NewTimeoutError creates the error returned when the executable overruns
// its timeout.
func NewTimeoutError() *Error {
	return &Error{Kind: KindTimeout, Message: "Timeout reached before process could finish"}
}

// NewExecutionError maps a non-zero exit code to its Xpdf meaning.
func NewExecutionError(exitCode int, stdout, stderr string) *Error {
	return &Error{
		Kind:           KindExecution,
		Message:        ExitCodeMessage(exitCode),
		ExitCode:       exitCode,
		StandardOutput: stdout,
		ErrorOutput:    stderr,
	}
}

// ExitCodeMessage returns the Xpdf description of an exit code.
// Codes 1-3 are documented by Xpdf; any other positive code is reported as
// a generic tool error and negative codes (killed by signal) as unknown.
func ExitCodeMessage(exitCode int) string {
	switch {
	case exitCode == 1:
		return "Error opening the PDF file"
	case exitCode == 2:
		return "Error opening the output file"
	case exitCode == 3:
		return "Error related to PDF permissions"
	case exitCode > 0:
		return "Other Xpdf error"
	default:
		return "Unknown Xpdf error"
	}
}

// AsProcessingError returns err unchanged when it already is an *Error and
// wraps it as a processing error otherwise.
func AsProcessingError(err error) error {
	if err == nil {
		return nil
	}
	var xerr *Error
	if errors.As(err, &xerr) {
		return err
	}
	return &Error{Kind: KindProcessing, Message: err.Error(), Err: err}
}
