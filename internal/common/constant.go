// Package common contains shared constants and helpers used across
// ViviGo client components.
package common

// Keys under which the session lives in the persistent key/value store.
// They are always written and cleared together.
const (
	TokenKey = "vivigo_token"
	UserKey  = "vivigo_user"
)

// RequestIDHeaderName is attached to every outbound API call so backend
// logs can be correlated with client logs.
const RequestIDHeaderName = "X-Request-ID"
