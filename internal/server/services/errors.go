// Package services contains the server's application services: account and
// session management, instruments, and portfolios.
package services

// ValidationError carries the exact user-facing message returned to API
// clients on a rejected request (missing field, taken username, and so on).
// The REST layer maps it to a 400 response with the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(message string) error {
	return &ValidationError{Message: message}
}
