package services

import (
	"context"

	"kpidashboard/config"
	"kpidashboard/models"

	"github.com/sirupsen/logrus"
)

type KPIService interface {
	ListKPIs(ctx context.Context, filter models.KPIFilter) []models.KPI
	GetKPI(ctx context.Context, id string) (*models.KPI, error)
	CreateKPI(ctx context.Context, in models.KPIInput) (*models.KPI, error)
	UpdateKPI(ctx context.Context, id string, in models.KPIInput) (*models.KPI, error)
	UpdateCompletion(ctx context.Context, id string, completion float64) (*models.KPI, error)
	DeleteKPI(ctx context.Context, id string) error
}

type kpiService struct {
	store *RecordStore
}

func NewKPIService(store *RecordStore) KPIService {
	return &kpiService{store: store}
}

func (s *kpiService) ListKPIs(ctx context.Context, filter models.KPIFilter) []models.KPI {
	employees, kpis := s.store.Snapshot()
	byID := indexEmployees(employees)

	out := make([]models.KPI, 0)
	for _, k := range kpis {
		if !k.InPeriod(filter.Year, filter.Month) {
			continue
		}
		if filter.AssigneeID != "" && k.AssigneeID != filter.AssigneeID {
			continue
		}
		if filter.Result != "" && k.Result != filter.Result {
			continue
		}
		if filter.Department != "" && byID[k.AssigneeID].Department != filter.Department {
			continue
		}
		out = append(out, k)
	}
	return out
}

func (s *kpiService) GetKPI(ctx context.Context, id string) (*models.KPI, error) {
	k, ok := s.store.KPI(id)
	if !ok {
		return nil, ErrKPINotFound
	}
	return &k, nil
}

func (s *kpiService) CreateKPI(ctx context.Context, in models.KPIInput) (*models.KPI, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	k, err := s.store.AddKPI(ctx, in.ToKPI(""))
	if err != nil {
		return nil, err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"kpi_id": k.ID,
		"result": k.Result,
	}).Info("KPI created")
	return &k, nil
}

// UpdateKPI replaces the KPI stored under id. Like the store, an unknown id
// changes nothing and is not reported: the result is then nil.
func (s *kpiService) UpdateKPI(ctx context.Context, id string, in models.KPIInput) (*models.KPI, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	k, replaced, err := s.store.UpdateKPI(ctx, in.ToKPI(id))
	if err != nil || !replaced {
		return nil, err
	}
	return &k, nil
}

// UpdateCompletion is the inline edit of a listed KPI, so the KPI must exist.
func (s *kpiService) UpdateCompletion(ctx context.Context, id string, completion float64) (*models.KPI, error) {
	k, found, err := s.store.SetCompletion(ctx, id, completion)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrKPINotFound
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"kpi_id":     id,
		"completion": k.Completion,
		"result":     k.Result,
	}).Debug("KPI completion updated")
	return &k, nil
}

func (s *kpiService) DeleteKPI(ctx context.Context, id string) error {
	return s.store.DeleteKPI(ctx, id)
}

// validate enforces the selection rules of the KPI form: the assignee is an
// active employee and the approver is the board or an active manager.
func (s *kpiService) validate(in models.KPIInput) error {
	verr := &ValidationError{}

	assignee, ok := s.store.Employee(in.AssigneeID)
	if !ok {
		verr.Add("assigneeId", "employee does not exist")
	} else if !assignee.IsActive() {
		verr.Add("assigneeId", "employee is not active")
	}

	if in.ApproverID != models.BoardSentinel {
		approver, ok := s.store.Employee(in.ApproverID)
		switch {
		case !ok:
			verr.Add("approverId", "employee does not exist")
		case !approver.IsManager() || !approver.IsActive():
			verr.Add("approverId", "must be BOD or an active manager")
		}
	}

	if _, _, err := models.MonthYear(in.StartDate); err != nil {
		verr.Add("startDate", "must be a YYYY-MM-DD date")
	}

	return verr.orNil()
}
