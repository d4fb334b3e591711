package dag

import "github.com/WeaveITMeta/Quantum-Operating-System/internal/errs"

// Shared failure values. Each is a typed *errs.Error, so callers can
// match either the sentinel itself with errors.Is or the circuit error
// code with errors.As.
var (
	ErrBadQubit  = errs.Circuit(errs.CodeInvalidQubitIndex, "dag: qubit index out of range")
	ErrBadClbit  = errs.Circuit(errs.CodeInvalidQubitIndex, "dag: classical bit index out of range")
	ErrSpan      = errs.Circuit(errs.CodeQubitCountMismatch, "dag: gate arity does not match its qubit list")
	ErrBuild     = errs.Circuit(errs.CodeConstructionFailed, "dag: cannot build due to previous error")
	ErrValidated = errs.Circuit(errs.CodeConstructionFailed, "dag: already validated, no further mutation")
)
