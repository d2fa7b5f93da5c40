// Package models defines the client-side view of the console's domain
// objects as returned by the REST API.
package models

// User is an account as reported by the server. The role is either "USER"
// or "ADMIN".
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == "ADMIN"
}
