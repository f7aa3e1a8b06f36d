// Package apierror holds errors raised inside this application that already
// know which HTTP status they map to.
package apierror

import (
	"fmt"
	"net/http"
)

// Error is a locally raised failure. Its Status and Message reach the client
// unchanged.
type Error struct {
	Status  int
	Message string
}

// Error returns the client-facing message.
func (e *Error) Error() string {
	return e.Message
}

// New builds an Error that the response layer writes with status and
// message as given.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation reports a malformed inbound request.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound reports that no employee exists for id.
func NotFound(id string) *Error {
	return New(http.StatusNotFound, fmt.Sprintf("Employee with %s not found.", id))
}
