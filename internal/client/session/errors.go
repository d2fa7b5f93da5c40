// Package session manages the client's authentication state: the persisted
// access token, its expiry check, login/logout against the backend, and the
// startup verification flow.
package session

// ValidationError carries a user-facing rejection message returned by the
// server (missing field, taken username). The message is surfaced verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
