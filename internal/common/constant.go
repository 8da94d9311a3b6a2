package common

// SessionCookieName is the HTTP-only cookie carrying the session JWT.
const SessionCookieName = "jwt"

// BearerPrefix precedes the token in an Authorization header.
const BearerPrefix = "Bearer "
