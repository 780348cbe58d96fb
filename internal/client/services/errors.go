package services

import (
	"errors"
	"strings"
)

var (
	// ErrNoToken is returned when a login response carries no token.
	ErrNoToken = errors.New("no token received from server")
	// ErrNoSession is returned by operations that need a stored token.
	ErrNoSession = errors.New("no active session")
	// ErrNotHost is returned by host-only operations for other roles.
	ErrNotHost = errors.New("signed-in user is not a host")
)

// ValidationError lists every local rule an input broke. It is returned
// before any request is sent.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}
