package errors

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain identifies this module in ErrorInfo details.
const Domain = "eris.director"

// Error is a structured domain error carrying a machine-readable code,
// optional metadata for message templating, and an optional cause.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// New constructs a domain error with no metadata or cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata constructs a domain error carrying templating metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap constructs a domain error around an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches domain errors by code, so errors.Is(err, New(Code, "")) works
// regardless of message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ToGRPCStatus converts the error into a gRPC status carrying an ErrorInfo
// detail (machine-readable code + metadata) and a LocalizedMessage detail
// (the user-facing text for locale).
func (e *Error) ToGRPCStatus(locale, userMessage string) error {
	st := status.New(e.Code.GRPCCode(), e.Message)
	withDetails, err := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  locale,
			Message: userMessage,
		},
	)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}
