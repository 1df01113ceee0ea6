package errors

import "fmt"

/*
StoreError represents a failure raised by the session store or one of
its container backends.
*/
type StoreError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

/*
Error implements the error interface for StoreError.
*/
func (e *StoreError) Error() string {
	return fmt.Sprintf("session store error %s: %s", e.Code, e.Message)
}

// Sentinel store errors. Compare with errors.Is; derive request-specific
// variants with WithMessagef.
var (
	ErrInvalidRequestType = &StoreError{Code: "invalid_request_type", Message: "container request is not a pipeline request adapter"}
	ErrContainerClosed    = &StoreError{Code: "container_closed", Message: "session container has been closed"}
	ErrBackendUnavailable = &StoreError{Code: "backend_unavailable", Message: "session backend is unavailable"}
)

// WithMessagef creates a *copy* of a StoreError with a formatted message.
// It does not modify the original error variable.
func (e *StoreError) WithMessagef(format string, args ...any) *StoreError {
	newErr := *e
	newErr.Message = fmt.Sprintf(format, args...)
	return &newErr
}

/*
Is reports whether target is the same class of StoreError, so that
sentinel comparisons keep working on copies produced by WithMessagef.
*/
func (e *StoreError) Is(target error) bool {
	other, ok := target.(*StoreError)
	return ok && other.Code == e.Code
}
