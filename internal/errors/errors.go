// Package errors defines the stable error code system for pagepatch.
package errors

import (
	"errors"
	"fmt"
	"io"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract.
const (
	EUsage Code = "E_USAGE"

	// Plan-level error codes. These abort the whole command.
	EPlanNotFound Code = "E_PLAN_NOT_FOUND"
	EInvalidPlan  Code = "E_INVALID_PLAN"

	// Per-target error codes. These are captured as result outcomes and
	// never abort the batch; they only surface as command errors when a
	// command chooses to propagate them (e.g. apply --strict).
	ETargetNotFound Code = "E_TARGET_NOT_FOUND"
	EOutsideRoot    Code = "E_OUTSIDE_ROOT"
	EWriteFailed    Code = "E_WRITE_FAILED"

	// Batch outcome error codes.
	ENotConverged Code = "E_NOT_CONVERGED"
	ERunFailed    Code = "E_RUN_FAILED"

	EInternal Code = "E_INTERNAL"
)

// PatchError is the standard error type for pagepatch errors.
type PatchError struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *PatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *PatchError) Unwrap() error {
	return e.Cause
}

// New creates a new PatchError with the given code and message.
func New(code Code, msg string) error {
	return &PatchError{Code: code, Msg: msg}
}

// NewWithDetails creates a new PatchError with code, message, and details.
// Details map is defensively copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &PatchError{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new PatchError wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &PatchError{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new PatchError wrapping an underlying error with details.
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &PatchError{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not a PatchError.
func GetCode(err error) Code {
	var pe *PatchError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// AsPatchError returns (*PatchError, true) if err is or wraps a PatchError.
func AsPatchError(err error) (*PatchError, bool) {
	var pe *PatchError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// copyDetails returns a defensive copy of the details map, or nil if empty/nil.
func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

// Print writes the error to w in the stable stderr format:
//
//	error_code: <CODE>
//	<message>
func Print(w io.Writer, err error) {
	if err == nil {
		return
	}
	var pe *PatchError
	if errors.As(err, &pe) {
		_, _ = fmt.Fprintf(w, "error_code: %s\n", pe.Code)
		_, _ = fmt.Fprintln(w, pe.Msg)
	} else {
		_, _ = fmt.Fprintln(w, err.Error())
	}
}
