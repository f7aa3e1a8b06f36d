// Package employee contains the HTTP handlers for the employee resource.
//
// Each exported function is a factory: it receives the use case once at
// startup and returns the handler the router calls on every request.
//
//	router.HandleFunc("GET /employees", employee.GetList(svc))
//
// Handlers validate input, call the use case and hand any error to
// response.WriteError, which is the only place errors become status codes.
package employee

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/aanand-mishra/employee-api/internal/apierror"
	employeesvc "github.com/aanand-mishra/employee-api/internal/employee"
	"github.com/aanand-mishra/employee-api/internal/types"
	"github.com/aanand-mishra/employee-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// upstreamContext keeps request values (request id) but not cancellation:
// a client disconnect does not abort the in-flight upstream call.
func upstreamContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// New handles POST /employees.
//
// Request body:
//
//	{ "name": "Jane Doe", "salary": 8000, "age": 28, "title": "Manager" }
//
// Responds 200 with the employee the upstream created. Invalid input is
// rejected with 400 before the upstream is contacted.
func New(svc employeesvc.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an employee")

		var in types.CreateEmployeeInput
		err := json.NewDecoder(r.Body).Decode(&in)
		if errors.Is(err, io.EOF) {
			response.WriteError(r.Context(), w, apierror.Validation("request body is empty"))
			return
		}
		if err != nil {
			response.WriteError(r.Context(), w, apierror.Validation(err.Error()))
			return
		}

		if err := validate.Struct(in); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				response.WriteError(r.Context(), w, apierror.Validation(response.ValidationMessage(validateErrs)))
				return
			}
			response.WriteError(r.Context(), w, err)
			return
		}

		created, err := svc.Create(upstreamContext(r), in)
		if err != nil {
			response.WriteError(r.Context(), w, err)
			return
		}

		if created != nil {
			slog.Info("employee created", slog.String("id", created.ID))
		}
		response.WriteJSON(w, http.StatusOK, created)
	}
}

// GetList handles GET /employees.
func GetList(svc employeesvc.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all employees")

		all, err := svc.GetAll(upstreamContext(r))
		if err != nil {
			response.WriteError(r.Context(), w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, all)
	}
}

// Search handles GET /employees/search/{fragment...}. An empty fragment
// returns everyone.
func Search(svc employeesvc.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fragment := r.PathValue("fragment")
		slog.Info("searching employees", slog.String("fragment", fragment))

		found, err := svc.SearchByName(upstreamContext(r), fragment)
		if err != nil {
			response.WriteError(r.Context(), w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, found)
	}
}

// GetByID handles GET /employees/{id}. Responds 404 when the upstream does
// not know the id.
func GetByID(svc employeesvc.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an employee", slog.String("id", id))

		emp, err := svc.GetByID(upstreamContext(r), id)
		if err != nil {
			response.WriteError(r.Context(), w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, emp)
	}
}

// HighestSalary handles GET /employees/highestSalary.
func HighestSalary(svc employeesvc.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting highest salary")

		highest, err := svc.HighestSalary(upstreamContext(r))
		if err != nil {
			response.WriteError(r.Context(), w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, highest)
	}
}

// TopEarners handles GET /employees/topTenHighestEarningEmployeeNames.
func TopEarners(svc employeesvc.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting top earners")

		names, err := svc.TopEarnerNames(upstreamContext(r))
		if err != nil {
			response.WriteError(r.Context(), w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, names)
	}
}

// Delete handles DELETE /employees/{id}.
//
// Responds with the deleted employee's name as a JSON string, or "" when
// the upstream did not confirm the deletion.
func Delete(svc employeesvc.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting an employee", slog.String("id", id))

		name, err := svc.DeleteByID(upstreamContext(r), id)
		if err != nil {
			response.WriteError(r.Context(), w, err)
			return
		}

		if name != "" {
			slog.Info("employee deleted", slog.String("id", id), slog.String("name", name))
		}
		response.WriteJSON(w, http.StatusOK, name)
	}
}
