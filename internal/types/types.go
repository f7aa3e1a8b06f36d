// Package types holds the data structures shared across the application:
// the employee record as both sides of the façade see it, the inbound
// request payloads, and the generic response envelope.
package types

// Employee is owned by the upstream service. This application never stores
// it; every request re-fetches what it needs.
type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"employee_name"`
	Salary int    `json:"employee_salary"`
	Age    int    `json:"employee_age"`
	Title  string `json:"employee_title"`
	Email  string `json:"employee_email"`
}

// CreateEmployeeInput is the body of POST /employees. It is forwarded to the
// upstream unchanged once it passes validation.
//
// notblank rejects whitespace-only strings; it is registered by the handler
// package from validator's non-standard set.
type CreateEmployeeInput struct {
	Name   string `json:"name"   validate:"notblank"`
	Salary int    `json:"salary" validate:"gt=0"`
	Age    int    `json:"age"    validate:"min=16,max=75"`
	Title  string `json:"title"  validate:"notblank"`
}

// DeleteEmployeeInput is the upstream delete contract: records are removed
// by name, not by id.
type DeleteEmployeeInput struct {
	Name string `json:"name" validate:"notblank"`
}

// Envelope wraps every upstream payload and every outward failure.
type Envelope[T any] struct {
	Data   T      `json:"data"`
	Error  string `json:"error,omitempty"`
	Status string `json:"status"`
}
