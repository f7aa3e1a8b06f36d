package employee

import (
	"net/http"

	employeesvc "github.com/aanand-mishra/employee-api/internal/employee"
	"github.com/aanand-mishra/employee-api/internal/http/middleware"
	"github.com/aanand-mishra/employee-api/internal/utils/response"
)

// NewRouter registers every route and wraps the mux in the request-id and
// access-log middleware.
//
// Route table:
//
//	GET    /employees                                    list
//	GET    /employees/search/{fragment...}               name search
//	GET    /employees/highestSalary                      highest salary
//	GET    /employees/topTenHighestEarningEmployeeNames  top ten names
//	GET    /employees/{id}                               one employee
//	POST   /employees                                    create
//	DELETE /employees/{id}                               delete, returns the name
//	GET    /health                                       liveness
func NewRouter(svc employeesvc.UseCase) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /health", Health)

	router.HandleFunc("GET /employees", GetList(svc))
	router.HandleFunc("GET /employees/search/{fragment...}", Search(svc))
	router.HandleFunc("GET /employees/highestSalary", HighestSalary(svc))
	router.HandleFunc("GET /employees/topTenHighestEarningEmployeeNames", TopEarners(svc))
	router.HandleFunc("GET /employees/{id}", GetByID(svc))
	router.HandleFunc("POST /employees", New(svc))
	router.HandleFunc("DELETE /employees/{id}", Delete(svc))

	return middleware.RequestID(middleware.Logging(router))
}

// Health answers liveness checks without touching the upstream.
func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
