package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable means the request could not be sent or its response
// could not be read.
var ErrUnavailable = errors.New("connection error: check that the server is available")

// APIError is a logical failure reported by the backend: a non-2xx status
// or an envelope with error set. Message and Errors are the backend's
// mensaje/errores, verbatim.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("request failed (status %d)", e.StatusCode)
	}
	if len(e.Errors) > 0 {
		return msg + ": " + strings.Join(e.Errors, "; ")
	}
	return msg
}
