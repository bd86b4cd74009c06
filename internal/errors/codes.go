// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeTransientUnavailable marks a model/store/bridge dependency as
	// temporarily unreachable. Nodes collapse to silent rather than retry.
	CodeTransientUnavailable Code = "TRANSIENT_UNAVAILABLE"
	// CodeTimeout marks a node or suspension point that exceeded its
	// per-node deadline.
	CodeTimeout Code = "TIMEOUT"
	// CodeSchemaViolation marks an event or tool argument that failed
	// validation against its declared schema.
	CodeSchemaViolation Code = "SCHEMA_VIOLATION"
	// CodeSafetyViolation marks a tool call rejected by the protection
	// validator.
	CodeSafetyViolation Code = "SAFETY_VIOLATION"
	// CodeQueueOverflow marks an event evicted because the processor's
	// queue exceeded its configured cap.
	CodeQueueOverflow Code = "QUEUE_OVERFLOW"
	// CodeInvariantBreach marks a synthetic-world state contradiction
	// that aborts the current event.
	CodeInvariantBreach Code = "INVARIANT_BREACH"
)

// GRPCCode maps domain codes to gRPC status codes. The director has no
// gRPC surface of its own, but the Game Bridge and any future admin
// tooling reuse this mapping rather than re-deriving one.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeTransientUnavailable:
		return codes.Unavailable
	case CodeTimeout:
		return codes.DeadlineExceeded
	case CodeSchemaViolation:
		return codes.InvalidArgument
	case CodeSafetyViolation:
		return codes.PermissionDenied
	case CodeQueueOverflow:
		return codes.ResourceExhausted
	case CodeInvariantBreach:
		return codes.Internal
	default:
		return codes.Internal
	}
}
