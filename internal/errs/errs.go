// Package errs implements the typed error taxonomy every component reports
// through: no panics cross a component boundary, clients get back one of
// these kinds either as a streaming Error message or a failed job status.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the top-level error category.
type Kind string

const (
	KindInvalidParameter Kind = "InvalidParameter"
	KindResourceNotFound Kind = "ResourceNotFound"
	KindCancelled        Kind = "Cancelled"
	KindTimeout          Kind = "Timeout"
	KindCircuit          Kind = "Circuit"
	KindExecution        Kind = "Execution"
	KindMeasurement      Kind = "Measurement"
	KindBackend          Kind = "Backend"
)

// Code is the specific sub-reason within a Kind.
type Code string

const (
	// Circuit(...)
	CodeInvalidQubitIndex      Code = "InvalidQubitIndex"
	CodeQubitCountMismatch     Code = "QubitCountMismatch"
	CodeParameterCountMismatch Code = "ParameterCountMismatch"
	CodeCircuitTooLarge        Code = "CircuitTooLarge"
	CodeEmptyCircuit           Code = "EmptyCircuit"
	CodeDuplicateQubit         Code = "DuplicateQubit"
	CodeSameControlTarget      Code = "SameControlTarget"
	CodeConstructionFailed     Code = "ConstructionFailed"

	// Execution(...)
	CodeJobNotFound         Code = "JobNotFound"
	CodeJobAlreadyCompleted Code = "JobAlreadyCompleted"
	CodeJobFailed           Code = "JobFailed"
	CodeExecutionCancelled  Code = "ExecutionCancelled"
	CodeBackendUnavailable  Code = "BackendUnavailable"
	CodeInvalidShotCount    Code = "InvalidShotCount"
	CodeStateVectorFailed   Code = "StateVectorFailed"
	CodeGradientFailed      Code = "GradientFailed"
	CodeAsyncError          Code = "AsyncError"
	CodeBatchFailed         Code = "BatchFailed"

	// Measurement(...)
	CodeNoMeasurements         Code = "NoMeasurements"
	CodeInvalidBitstringLength Code = "InvalidBitstringLength"
	CodeStreamIncomplete       Code = "StreamIncomplete"
	CodeObservableFailed       Code = "ObservableFailed"
	CodeInvalidBasis           Code = "InvalidBasis"
	CodeStatisticsFailed       Code = "StatisticsFailed"

	// Backend(...)
	CodeDenseStateTooLarge       Code = "DenseStateTooLarge"
	CodeMpsBondDimensionExceeded Code = "MpsBondDimensionExceeded"
	CodeMpsTruncationError       Code = "MpsTruncationError"
	CodeGpuInitFailed            Code = "GpuInitFailed"
	CodeGpuMemoryAlloc           Code = "GpuMemoryAlloc"
	CodeGpuKernelFailed          Code = "GpuKernelFailed"
	CodeNotAvailable             Code = "NotAvailable"
	CodeConfigError              Code = "ConfigError"
)

// Error is the single error type propagated across component boundaries.
type Error struct {
	Kind      Kind
	Code      Code // empty for flat kinds (InvalidParameter, ResourceNotFound, Cancelled)
	Message   string
	TimeoutMS int64 // populated only for KindTimeout
	cause     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		if e.Message != "" {
			return fmt.Sprintf("%s.%s: %s", e.Kind, e.Code, e.Message)
		}
		return fmt.Sprintf("%s.%s", e.Kind, e.Code)
	}
	if e.Kind == KindTimeout {
		if e.Message != "" {
			return fmt.Sprintf("Timeout(%dms): %s", e.TimeoutMS, e.Message)
		}
		return fmt.Sprintf("Timeout(%dms)", e.TimeoutMS)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

func new(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind Kind, code Code, msg string, cause error) *Error {
	e := new(kind, code, msg)
	e.cause = cause
	return e
}

func InvalidParameter(msg string) *Error { return new(KindInvalidParameter, "", msg) }
func ResourceNotFound(msg string) *Error { return new(KindResourceNotFound, "", msg) }
func Cancelled(msg string) *Error        { return new(KindCancelled, "", msg) }

func Timeout(ms int64) *Error {
	return &Error{Kind: KindTimeout, TimeoutMS: ms}
}

func Circuit(code Code, msg string) *Error     { return new(KindCircuit, code, msg) }
func Execution(code Code, msg string) *Error   { return new(KindExecution, code, msg) }
func Measurement(code Code, msg string) *Error { return new(KindMeasurement, code, msg) }
func Backend(code Code, msg string) *Error     { return new(KindBackend, code, msg) }

// Is reports whether err is an *Error of the given kind (and, if code is
// non-empty, the given code).
func Is(err error, kind Kind, code Code) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	if e.Kind != kind {
		return false
	}
	if code != "" && e.Code != code {
		return false
	}
	return true
}

// WireCode renders err's kind/code pair as the code field of a wire Error
// message ("Execution.InvalidShotCount", "Timeout", ...). Errors outside
// this taxonomy fall back to "Internal".
func WireCode(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Internal"
	}
	if e.Code != "" {
		return string(e.Kind) + "." + string(e.Code)
	}
	return string(e.Kind)
}
