package services

import (
	"context"

	"kpidashboard/config"
	"kpidashboard/models"

	"github.com/sirupsen/logrus"
)

type EmployeeService interface {
	ListEmployees(ctx context.Context, filter models.EmployeeFilter) []models.Employee
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, in models.EmployeeInput) (*models.Employee, error)
	// DeleteEmployee removes the employee and its KPIs, returning how many KPIs were removed.
	DeleteEmployee(ctx context.Context, id string) (int, error)
}

type employeeService struct {
	store *RecordStore
}

func NewEmployeeService(store *RecordStore) EmployeeService {
	return &employeeService{store: store}
}

func (s *employeeService) ListEmployees(ctx context.Context, filter models.EmployeeFilter) []models.Employee {
	employees := s.store.Employees()
	out := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if filter.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *employeeService) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e, ok := s.store.Employee(id)
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return &e, nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	e, err := s.store.AddEmployee(ctx, in.ToEmployee(""))
	if err != nil {
		return nil, err
	}

	config.WithContext(ctx).WithField("employee_id", e.ID).Info("Employee created")
	return &e, nil
}

// UpdateEmployee replaces the employee stored under id. Like the store, an
// unknown id changes nothing and is not reported: the result is then nil.
func (s *employeeService) UpdateEmployee(ctx context.Context, id string, in models.EmployeeInput) (*models.Employee, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	e := in.ToEmployee(id)
	replaced, err := s.store.UpdateEmployee(ctx, e)
	if err != nil || !replaced {
		return nil, err
	}
	return &e, nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, id string) (int, error) {
	removed, err := s.store.DeleteEmployee(ctx, id)
	if err != nil {
		return 0, err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"employee_id":  id,
		"removed_kpis": removed,
	}).Info("Employee deleted")
	return removed, nil
}

// validate checks that the team lead, when given, is the board or an active manager.
func (s *employeeService) validate(in models.EmployeeInput) error {
	verr := &ValidationError{}

	if in.TeamLead != "" && in.TeamLead != models.BoardSentinel {
		found := false
		for _, e := range s.store.Employees() {
			if e.Name == in.TeamLead && e.IsManager() && e.IsActive() {
				found = true
				break
			}
		}
		if !found {
			verr.Add("teamLead", "must be BOD or the name of an active manager")
		}
	}

	return verr.orNil()
}
