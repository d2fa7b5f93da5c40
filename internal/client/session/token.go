package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValid reports whether token is a well-formed JWT whose exp claim lies
// after now. The signature is NOT verified; the server remains the authority
// on token acceptance. Any malformed input or a missing exp claim counts as
// invalid.
func TokenValid(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.After(now)
}
