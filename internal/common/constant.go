package common

// TokenStorageKey is the fixed key under which the client persists the
// current bearer token. At most one token is resident at a time.
const TokenStorageKey = "jwt_token"

// AuthorizationHeader is the HTTP header carrying the bearer token on
// outgoing authenticated requests.
const AuthorizationHeader = "Authorization"
