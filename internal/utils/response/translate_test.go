package response

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/employee-api/internal/apierror"
	"github.com/aanand-mishra/employee-api/internal/upstream"
)

func TestFromError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "local not found",
			err:        apierror.NotFound("x"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Employee with x not found.",
		},
		{
			name:       "validation",
			err:        apierror.Validation("field age must be at least 16"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "field age must be at least 16",
		},
		{
			name:       "rate limited ignores body",
			err:        &upstream.HTTPError{StatusCode: http.StatusTooManyRequests, Body: []byte(`{"error":"quota exceeded for tenant"}`)},
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    RateLimitedMessage,
		},
		{
			name:       "embedded json error",
			err:        &upstream.HTTPError{StatusCode: http.StatusBadRequest, Body: []byte(`400 Bad Request: "{"data":null,"error":"name is taken","status":"FAILED"}"`)},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "name is taken",
		},
		{
			name:       "plain json error",
			err:        &upstream.HTTPError{StatusCode: http.StatusConflict, Body: []byte(`{"error":"conflict"}`)},
			wantStatus: http.StatusConflict,
			wantMsg:    "conflict",
		},
		{
			name:       "unparseable body falls back to raw text",
			err:        &upstream.HTTPError{StatusCode: http.StatusInternalServerError, Body: []byte(`oops {not json}`)},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "500 Internal Server Error: oops {not json}",
		},
		{
			name:       "no braces",
			err:        &upstream.HTTPError{StatusCode: http.StatusServiceUnavailable, Body: []byte(`maintenance`)},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "503 Service Unavailable: maintenance",
		},
		{
			name:       "empty body",
			err:        &upstream.HTTPError{StatusCode: http.StatusBadGateway},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "502 Bad Gateway",
		},
		{
			name:       "json without error field",
			err:        &upstream.HTTPError{StatusCode: http.StatusBadRequest, Body: []byte(`{"status":"FAILED"}`)},
			wantStatus: http.StatusBadRequest,
			wantMsg:    `400 Bad Request: {"status":"FAILED"}`,
		},
		{
			name:       "wrapped upstream error",
			err:        fmt.Errorf("%w: %w", upstream.ErrNotFound, &upstream.HTTPError{StatusCode: http.StatusNotFound, Body: []byte(`{"error":"gone"}`)}),
			wantStatus: http.StatusNotFound,
			wantMsg:    "gone",
		},
		{
			name:       "generic error text stays internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := FromError(tc.err)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if msg != tc.wantMsg {
				t.Errorf("message = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestFromErrorHidesUpstreamEndpoint(t *testing.T) {
	const endpoint = "http://10.0.0.7:8112/api/v1/employee"

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name: "unreachable",
			err: &upstream.CallError{Method: "GET", URL: endpoint,
				Err: fmt.Errorf("%w: dial tcp 10.0.0.7:8112: connect: connection refused", upstream.ErrUnreachable)},
			wantStatus: http.StatusBadGateway,
			wantMsg:    upstream.ErrUnreachable.Error(),
		},
		{
			name: "timeout",
			err: &upstream.CallError{Method: "GET", URL: endpoint,
				Err: fmt.Errorf("%w: %w: context deadline exceeded", upstream.ErrUnreachable, upstream.ErrTimeout)},
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    upstream.ErrTimeout.Error(),
		},
		{
			name: "bad response",
			err: &upstream.CallError{Method: "GET", URL: endpoint,
				Err: fmt.Errorf("%w: invalid character 'x'", upstream.ErrBadResponse)},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    upstream.ErrBadResponse.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := FromError(tc.err)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if msg != tc.wantMsg {
				t.Errorf("message = %q, want %q", msg, tc.wantMsg)
			}
			if strings.Contains(msg, "10.0.0.7") {
				t.Errorf("message %q exposes the upstream host", msg)
			}
		})
	}
}

func TestWriteErrorLogsUpstreamCall(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	err := &upstream.HTTPError{Method: "DELETE", URL: "http://upstream/api/v1/employee", StatusCode: http.StatusConflict}
	rr := httptest.NewRecorder()
	WriteError(context.Background(), rr, err)

	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "http://upstream") {
		t.Errorf("body exposes the upstream url: %s", rr.Body)
	}
	logged := buf.String()
	if !strings.Contains(logged, "upstream_method=DELETE") || !strings.Contains(logged, "upstream_url=http://upstream/api/v1/employee") {
		t.Errorf("log line missing upstream call: %s", logged)
	}
}

func TestExtractErrorField(t *testing.T) {
	testCases := []struct {
		body string
		want string
	}{
		{``, ""},
		{`}{`, ""},
		{`prefix {"error":"x"} suffix`, "x"},
		{`{"error":""}`, ""},
		{`{"error":123}`, ""},
	}

	for _, tc := range testCases {
		if got := extractErrorField(tc.body); got != tc.want {
			t.Errorf("extractErrorField(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(context.Background(), rr, apierror.NotFound("x"))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if v, ok := body["data"]; !ok || v != nil {
		t.Errorf("data = %v, want explicit null", v)
	}
	if body["status"] != StatusFailed {
		t.Errorf("status field = %v", body["status"])
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "x") {
		t.Errorf("error = %v", body["error"])
	}
}
