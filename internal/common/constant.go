// Package common contains shared constants and sentinel errors used across
// Billed client components.
package common

// UserSessionKey is the SessionStore key holding the JSON-serialized session.
const UserSessionKey = "user"

// AuthorizationHeaderName carries the bearer token on outbound store requests.
const AuthorizationHeaderName = "Authorization"
