// Package upstream defines the contract with the external employee service.
//
// Handlers and the employee service depend only on the Client interface, so
// tests can swap in a fake and the transport can change without touching
// the rest of the application.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aanand-mishra/employee-api/internal/types"
)

var (
	// ErrNotFound is returned by GetEmployee and DeleteEmployee when the
	// upstream answers 404.
	ErrNotFound = errors.New("upstream: employee not found")

	// ErrUnreachable wraps transport failures: DNS, refused connections,
	// resets, and timeouts.
	ErrUnreachable = errors.New("upstream: unreachable")

	// ErrTimeout is wrapped alongside ErrUnreachable when the call ran out
	// of time.
	ErrTimeout = errors.New("upstream: timed out")

	// ErrBadResponse wraps a 2xx response whose body is not the expected
	// JSON envelope.
	ErrBadResponse = errors.New("upstream: invalid response")
)

// Client is the upstream employee API.
type Client interface {
	// ListEmployees returns the complete employee list in upstream order.
	// An absent data field yields an empty, non-nil slice.
	ListEmployees(ctx context.Context) ([]types.Employee, error)

	// GetEmployee returns the employee with the given id, or nil when the
	// upstream answered 2xx without data. A 404 yields ErrNotFound.
	GetEmployee(ctx context.Context, id string) (*types.Employee, error)

	// CreateEmployee posts an already validated request and returns the
	// upstream's data field as-is.
	CreateEmployee(ctx context.Context, in types.CreateEmployeeInput) (*types.Employee, error)

	// DeleteEmployee removes the employee with the given name. The bool is
	// the upstream's data field, false when absent. A 404 yields ErrNotFound.
	DeleteEmployee(ctx context.Context, name string) (bool, error)
}

// HTTPError carries status/body for non-2xx upstream responses.
//
// Method and URL identify the call for logs; Error() leaves the URL out
// because the message can reach clients.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

// Error formats the status line followed by a snippet of the body, e.g.
//
//	404 Not Found: {"error":"no such employee"}
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if body := snippet(e.Body, 900); body != "" {
		msg += ": " + body
	}
	return msg
}

// CallError records which upstream call failed without a usable HTTP
// response: transport failures and undecodable bodies. Like HTTPError it
// keeps the URL out of Error().
type CallError struct {
	Method string
	URL    string
	Err    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Method, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Call returns the method and URL of the upstream call behind err, if any.
func Call(err error) (method, url string, ok bool) {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Method, herr.URL, true
	}
	var cerr *CallError
	if errors.As(err, &cerr) {
		return cerr.Method, cerr.URL, true
	}
	return "", "", false
}

// snippet trims b and caps it at max bytes without splitting a rune.
func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "…"
}
