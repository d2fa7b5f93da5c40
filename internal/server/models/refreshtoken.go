package models

import "time"

// RefreshToken is a server-side record allowing a user to rotate an access
// token without re-submitting credentials.
type RefreshToken struct {
	UserID  int64
	Token   string
	Expires time.Time
}
