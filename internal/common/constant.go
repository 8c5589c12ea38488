package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed on every response and accepted from callers.
const RequestIDHeaderName = "X-Request-ID"

// GoogleProvider is the only external identity provider accounts can link.
const GoogleProvider = "google"
