package response

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/employee-api/internal/apierror"
	"github.com/aanand-mishra/employee-api/internal/http/middleware"
	"github.com/aanand-mishra/employee-api/internal/upstream"
)

// RateLimitedMessage replaces whatever the upstream said when it throttled us.
const RateLimitedMessage = "too many requests, retry later"

// FromError maps any error surfaced by the upstream client, the employee
// service or a handler onto the outward status code and failure envelope.
func FromError(err error) (int, string) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}

	var herr *upstream.HTTPError
	if errors.As(err, &herr) {
		if herr.StatusCode == http.StatusTooManyRequests {
			return http.StatusTooManyRequests, RateLimitedMessage
		}
		return herr.StatusCode, upstreamMessage(herr)
	}

	// Only the sentinel text goes out; the wrapped detail names upstream
	// hosts and is logged by WriteError instead.
	switch {
	case errors.Is(err, upstream.ErrTimeout):
		return http.StatusGatewayTimeout, upstream.ErrTimeout.Error()
	case errors.Is(err, upstream.ErrUnreachable):
		return http.StatusBadGateway, upstream.ErrUnreachable.Error()
	case errors.Is(err, upstream.ErrBadResponse):
		return http.StatusInternalServerError, upstream.ErrBadResponse.Error()
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// upstreamMessage prefers the error field of a JSON object embedded in the
// upstream body (first '{' through last '}'); otherwise the raw message.
func upstreamMessage(herr *upstream.HTTPError) string {
	if msg := extractErrorField(string(herr.Body)); msg != "" {
		return msg
	}
	return herr.Error()
}

func extractErrorField(body string) string {
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return ""
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body[start:end+1]), &payload); err != nil {
		return ""
	}
	return payload.Error
}

// WriteError translates err and writes the failure envelope. The full
// error, and the upstream call behind it when there is one, is logged.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := FromError(err)

	attrs := []any{
		slog.Int("status", status),
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetRequestID(ctx)),
	}
	if method, url, ok := upstream.Call(err); ok {
		attrs = append(attrs,
			slog.String("upstream_method", method),
			slog.String("upstream_url", url))
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request failed", attrs...)
	}

	WriteJSON(w, status, Failure(message))
}
