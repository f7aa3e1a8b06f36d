// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Successful responses carry the bare payload (an employee, a list, a
// number). Failures always use the envelope:
//
//	{ "data": null, "error": "Employee with x not found.", "status": "FAILED" }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aanand-mishra/employee-api/internal/types"
	"github.com/go-playground/validator/v10"
)

// StatusFailed is the envelope status of every failure.
const StatusFailed = "FAILED"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Failure builds the failure envelope for message.
func Failure(message string) types.Envelope[any] {
	return types.Envelope[any]{
		Data:   nil,
		Error:  message,
		Status: StatusFailed,
	}
}

// ValidationMessage converts validator field errors into a single
// human-readable sentence, e.g.
//
//	field age must be at least 16, field title is required
func ValidationMessage(errs validator.ValidationErrors) string {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required", "notblank":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", e.Field(), e.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
