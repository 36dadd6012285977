package apperror

import "net/http"

// Kind classifies an error for the caller-facing result envelope.
// User-correctable errors are reported verbatim, stale-state errors
// generically, and infrastructure errors are retryable.
type Kind int

const (
	KindUserCorrectable Kind = iota
	KindStaleState
	KindInfrastructure
	KindFatal
)

// AppError is the error type services return across the HTTP boundary.
type AppError struct {
	Code    int  // HTTP status code
	Kind    Kind
	Message string // user-facing message
	Err     error  // underlying error, not exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code, kind and message.
func New(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates an AppError wrapping an existing error.
func Wrap(err error, code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Unavailable wraps a store/network failure as a retryable infrastructure error.
func Unavailable(err error) *AppError {
	return Wrap(err, http.StatusServiceUnavailable, KindInfrastructure, "store unavailable, please retry")
}
