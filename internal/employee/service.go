// Package employee implements the façade's operations on top of the
// upstream employee service.
//
// Aggregations (search, highest salary, top earners) fetch the full list and
// compute in memory; nothing is cached between requests.
package employee

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/employee-api/internal/apierror"
	"github.com/aanand-mishra/employee-api/internal/types"
	"github.com/aanand-mishra/employee-api/internal/upstream"
)

// UseCase is what the HTTP handlers need from this package.
type UseCase interface {
	GetAll(ctx context.Context) ([]types.Employee, error)
	SearchByName(ctx context.Context, fragment string) ([]types.Employee, error)
	GetByID(ctx context.Context, id string) (*types.Employee, error)
	HighestSalary(ctx context.Context) (int, error)
	TopEarnerNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, in types.CreateEmployeeInput) (*types.Employee, error)
	DeleteByID(ctx context.Context, id string) (string, error)
}

// Service is the UseCase backed by an upstream.Client.
type Service struct {
	client upstream.Client
}

// NewService returns a Service that reads and writes through client.
func NewService(client upstream.Client) *Service {
	return &Service{client: client}
}

// GetAll returns every employee in the order the upstream lists them.
func (s *Service) GetAll(ctx context.Context) ([]types.Employee, error) {
	return s.client.ListEmployees(ctx)
}

// SearchByName fetches the full list and keeps the employees whose name
// contains fragment, ignoring case. An empty fragment keeps everyone.
func (s *Service) SearchByName(ctx context.Context, fragment string) ([]types.Employee, error) {
	all, err := s.client.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return Search(all, fragment), nil
}

// GetByID looks up a single employee. An upstream 404 becomes a local
// not-found error naming id.
//
// It returns nil without error when the upstream confirmed the lookup
// but sent no data.
func (s *Service) GetByID(ctx context.Context, id string) (*types.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apierror.Validation("id must not be empty")
	}

	emp, err := s.client.GetEmployee(ctx, id)
	if errors.Is(err, upstream.ErrNotFound) {
		return nil, apierror.NotFound(id)
	}
	return emp, err
}

// HighestSalary returns the largest salary across all employees, or 0 when
// the upstream list is empty.
func (s *Service) HighestSalary(ctx context.Context) (int, error) {
	all, err := s.client.ListEmployees(ctx)
	if err != nil {
		return 0, err
	}
	return MaxSalary(all), nil
}

// TopEarnerNames returns up to TopEarnersLimit names ordered by salary,
// highest first.
func (s *Service) TopEarnerNames(ctx context.Context) ([]string, error) {
	all, err := s.client.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return TopEarners(all, TopEarnersLimit), nil
}

// Create forwards in to the upstream and returns the employee it stored,
// id included. It expects in to be validated already.
func (s *Service) Create(ctx context.Context, in types.CreateEmployeeInput) (*types.Employee, error) {
	return s.client.CreateEmployee(ctx, in)
}

// DeleteByID resolves id to a name and deletes by that name, since the
// upstream only deletes by name. It returns the deleted name, or "" when the
// upstream did not confirm the deletion.
//
// The upstream removes by name, so with duplicate names it decides which
// record goes; the id lookup only guarantees that some record with that id
// existed.
func (s *Service) DeleteByID(ctx context.Context, id string) (string, error) {
	emp, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if emp == nil {
		return "", nil
	}

	deleted, err := s.client.DeleteEmployee(ctx, emp.Name)
	if errors.Is(err, upstream.ErrNotFound) {
		return "", apierror.NotFound(id)
	}
	if err != nil {
		return "", err
	}
	if !deleted {
		slog.Warn("upstream did not confirm deletion",
			slog.String("id", id),
			slog.String("name", emp.Name))
		return "", nil
	}

	return emp.Name, nil
}
