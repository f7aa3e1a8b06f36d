// Package rest implements upstream.Client on top of net/http and the
// upstream's JSON envelope.
//
// Calls are never retried: a failed upstream call fails the inbound request.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/aanand-mishra/employee-api/internal/config"
	"github.com/aanand-mishra/employee-api/internal/http/middleware"
	"github.com/aanand-mishra/employee-api/internal/types"
	"github.com/aanand-mishra/employee-api/internal/upstream"
)

const contentTypeJSON = "application/json"

// Client talks to the upstream employee service. It satisfies
// upstream.Client and holds no state between calls, so one value is shared
// by all requests.
type Client struct {
	BaseURL          string
	EmployeePath     string
	EmployeeByIDPath string
	HTTP             *http.Client
}

// New builds a Client from the upstream section of the config. The
// timeout bounds each call end to end, including reading the body.
func New(cfg config.Upstream) *Client {
	return &Client{
		BaseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		EmployeePath:     cfg.EmployeePath,
		EmployeeByIDPath: cfg.EmployeeByIDPath,
		HTTP:             &http.Client{Timeout: cfg.Timeout},
	}
}

// ListEmployees issues GET on the collection path and unwraps the
// envelope's data field. A missing body or null data yields an empty list.
func (c *Client) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	var env types.Envelope[[]types.Employee]
	if err := c.doJSON(ctx, http.MethodGet, c.BaseURL+c.EmployeePath, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return make([]types.Employee, 0), nil
	}
	return env.Data, nil
}

// GetEmployee issues GET on the per-id path. The id is path-escaped before
// it is substituted into the EmployeeByIDPath template, so ids containing
// "/" or spaces stay a single segment.
//
// A 404 is tagged with upstream.ErrNotFound; any other non-2xx comes back
// as *upstream.HTTPError untouched.
func (c *Client) GetEmployee(ctx context.Context, id string) (*types.Employee, error) {
	endpoint := c.BaseURL + fmt.Sprintf(c.EmployeeByIDPath, url.PathEscape(id))

	var env types.Envelope[*types.Employee]
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, notFound(err)
	}
	return env.Data, nil
}

// CreateEmployee POSTs the request body to the collection path. Errors are
// never special-cased here, a 404 included.
func (c *Client) CreateEmployee(ctx context.Context, in types.CreateEmployeeInput) (*types.Employee, error) {
	var env types.Envelope[*types.Employee]
	if err := c.doJSON(ctx, http.MethodPost, c.BaseURL+c.EmployeePath, in, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// DeleteEmployee issues DELETE on the collection path with {"name": ...}
// in the body; the upstream deletes by name, not by id.
//
// The returned bool is the envelope's data field and defaults to false.
func (c *Client) DeleteEmployee(ctx context.Context, name string) (bool, error) {
	var env types.Envelope[bool]
	in := types.DeleteEmployeeInput{Name: name}
	if err := c.doJSON(ctx, http.MethodDelete, c.BaseURL+c.EmployeePath, in, &env); err != nil {
		return false, notFound(err)
	}
	return env.Data, nil
}

// notFound tags a 404 with upstream.ErrNotFound; the HTTPError stays in the
// chain for logging.
func notFound(err error) error {
	var herr *upstream.HTTPError
	if errors.As(err, &herr) && herr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", upstream.ErrNotFound, herr)
	}
	return err
}

// doJSON sends body (when non-nil) as JSON and decodes a 2xx response into
// out. An empty 2xx body leaves out untouched.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode %s request: %w", method, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("upstream: build %s request: %w", method, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if id := middleware.GetRequestID(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return unreachable(method, endpoint, err)
	}

	respBody, err := readAndClose(resp.Body)
	if err != nil {
		return unreachable(method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &upstream.HTTPError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &upstream.CallError{
			Method: method,
			URL:    endpoint,
			Err:    fmt.Errorf("%w: %w", upstream.ErrBadResponse, err),
		}
	}
	return nil
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

// unreachable classifies a transport failure. The *url.Error layer is
// peeled off because its message repeats the endpoint.
func unreachable(method, endpoint string, err error) error {
	timeout := isTimeout(err)

	cause := err
	var uerr *url.Error
	if errors.As(err, &uerr) {
		cause = uerr.Err
	}

	wrapped := fmt.Errorf("%w: %v", upstream.ErrUnreachable, cause)
	if timeout {
		wrapped = fmt.Errorf("%w: %w: %v", upstream.ErrUnreachable, upstream.ErrTimeout, cause)
	}
	return &upstream.CallError{Method: method, URL: endpoint, Err: wrapped}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
