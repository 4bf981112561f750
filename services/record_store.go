package services

import (
	"context"
	"fmt"
	"sync"

	"kpidashboard/config"
	"kpidashboard/models"
	repository "kpidashboard/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	employeeIDPrefix = "emp"
	kpiIDPrefix      = "kpi"
)

// NewObjectID returns prefix followed by a fresh ObjectID. ObjectIDs carry a
// per-process counter, so ids never collide however fast they are created.
func NewObjectID(prefix string) string {
	return prefix + primitive.NewObjectID().Hex()
}

// RecordStore is the single source of truth for employees and KPIs. Every
// mutation is persisted as a full snapshot of the affected collections before
// it becomes visible; a failed save leaves the store unchanged.
type RecordStore struct {
	mu        sync.RWMutex
	repo      repository.SnapshotRepository
	employees []models.Employee
	kpis      []models.KPI
	newID     func(prefix string) string
}

type StoreOption func(*storeOptions)

type storeOptions struct {
	seedEmployees []models.Employee
	seedKPIs      []models.KPI
	newID         func(prefix string) string
}

// WithSeed sets the collections used for keys that have never been saved.
func WithSeed(employees []models.Employee, kpis []models.KPI) StoreOption {
	return func(o *storeOptions) {
		o.seedEmployees = employees
		o.seedKPIs = kpis
	}
}

func WithIDGenerator(newID func(prefix string) string) StoreOption {
	return func(o *storeOptions) {
		o.newID = newID
	}
}

func NewRecordStore(ctx context.Context, repo repository.SnapshotRepository, opts ...StoreOption) (*RecordStore, error) {
	o := storeOptions{newID: NewObjectID}
	for _, opt := range opts {
		opt(&o)
	}

	log := config.WithContext(ctx).WithField("component", "record_store")

	var employees []models.Employee
	found, err := repo.Load(ctx, repository.EmployeesKey, &employees)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	if !found {
		employees = cloneEmployees(o.seedEmployees)
		log.WithField("count", len(employees)).Info("No employee snapshot, starting from seed")
	}

	var kpis []models.KPI
	found, err = repo.Load(ctx, repository.KPIsKey, &kpis)
	if err != nil {
		return nil, fmt.Errorf("failed to load kpis: %w", err)
	}
	if !found {
		kpis = cloneKPIs(o.seedKPIs)
		log.WithField("count", len(kpis)).Info("No KPI snapshot, starting from seed")
	}
	for i := range kpis {
		kpis[i].SetCompletion(kpis[i].Completion)
	}

	return &RecordStore{
		repo:      repo,
		employees: employees,
		kpis:      kpis,
		newID:     o.newID,
	}, nil
}

func (s *RecordStore) Employees() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEmployees(s.employees)
}

func (s *RecordStore) KPIs() []models.KPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneKPIs(s.kpis)
}

// Snapshot returns copies of both collections taken under one lock.
func (s *RecordStore) Snapshot() ([]models.Employee, []models.KPI) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEmployees(s.employees), cloneKPIs(s.kpis)
}

func (s *RecordStore) Employee(id string) (models.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return models.Employee{}, false
}

func (s *RecordStore) KPI(id string) (models.KPI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range s.kpis {
		if k.ID == id {
			return k, true
		}
	}
	return models.KPI{}, false
}

// AddEmployee stores e under a fresh id, ignoring any id it carries.
func (s *RecordStore) AddEmployee(ctx context.Context, e models.Employee) (models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.newID(employeeIDPrefix)
	employees := append(cloneEmployees(s.employees), e)

	if err := s.repo.Save(ctx, repository.EmployeesKey, employees); err != nil {
		return models.Employee{}, fmt.Errorf("failed to persist employees: %w", err)
	}
	s.employees = employees
	return e, nil
}

// UpdateEmployee replaces the employee with e.ID and reports whether one was
// replaced. An unknown id is ignored.
func (s *RecordStore) UpdateEmployee(ctx context.Context, e models.Employee) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees := cloneEmployees(s.employees)
	replaced := false
	for i := range employees {
		if employees[i].ID == e.ID {
			employees[i] = e
			replaced = true
		}
	}
	if !replaced {
		return false, nil
	}

	if err := s.repo.Save(ctx, repository.EmployeesKey, employees); err != nil {
		return false, fmt.Errorf("failed to persist employees: %w", err)
	}
	s.employees = employees
	return true, nil
}

// DeleteEmployee removes the employee and every KPI that names it as assignee
// or approver. It returns how many KPIs went with it.
func (s *RecordStore) DeleteEmployee(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.ID != id {
			employees = append(employees, e)
		}
	}

	kpis := make([]models.KPI, 0, len(s.kpis))
	for _, k := range s.kpis {
		if k.AssigneeID != id && k.ApproverID != id {
			kpis = append(kpis, k)
		}
	}

	removedKPIs := len(s.kpis) - len(kpis)
	if len(employees) == len(s.employees) && removedKPIs == 0 {
		return 0, nil
	}

	err := s.repo.SaveBatch(ctx, []repository.Snapshot{
		{Key: repository.EmployeesKey, Value: employees},
		{Key: repository.KPIsKey, Value: kpis},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to persist employee deletion: %w", err)
	}
	s.employees = employees
	s.kpis = kpis
	return removedKPIs, nil
}

// AddKPI stores k under a fresh id with its result and period derived.
func (s *RecordStore) AddKPI(ctx context.Context, k models.KPI) (models.KPI, error) {
	if err := k.Normalize(); err != nil {
		return models.KPI{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k.ID = s.newID(kpiIDPrefix)
	kpis := append(cloneKPIs(s.kpis), k)

	if err := s.repo.Save(ctx, repository.KPIsKey, kpis); err != nil {
		return models.KPI{}, fmt.Errorf("failed to persist kpis: %w", err)
	}
	s.kpis = kpis
	return k, nil
}

// UpdateKPI replaces the KPI with k.ID after re-deriving its result and
// period, reporting whether it was found. An unknown id is ignored.
func (s *RecordStore) UpdateKPI(ctx context.Context, k models.KPI) (models.KPI, bool, error) {
	if err := k.Normalize(); err != nil {
		return models.KPI{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced, err := s.replaceKPI(ctx, k)
	if err != nil || !replaced {
		return models.KPI{}, false, err
	}
	return k, true, nil
}

// SetCompletion is the inline completion edit: the value is floored at zero
// and the result re-derived. The lookup and the write happen under one lock;
// found is false for an unknown id, which is otherwise ignored.
func (s *RecordStore) SetCompletion(ctx context.Context, id string, completion float64) (k models.KPI, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.kpis {
		if existing.ID == id {
			k, found = existing, true
			break
		}
	}
	if !found {
		return models.KPI{}, false, nil
	}

	k.SetCompletion(models.ClampCompletion(completion))
	if _, err := s.replaceKPI(ctx, k); err != nil {
		return models.KPI{}, true, err
	}
	return k, true, nil
}

func (s *RecordStore) DeleteKPI(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kpis := make([]models.KPI, 0, len(s.kpis))
	for _, k := range s.kpis {
		if k.ID != id {
			kpis = append(kpis, k)
		}
	}
	if len(kpis) == len(s.kpis) {
		return nil
	}

	if err := s.repo.Save(ctx, repository.KPIsKey, kpis); err != nil {
		return fmt.Errorf("failed to persist kpis: %w", err)
	}
	s.kpis = kpis
	return nil
}

// replaceKPI must be called with s.mu held.
func (s *RecordStore) replaceKPI(ctx context.Context, k models.KPI) (bool, error) {
	kpis := cloneKPIs(s.kpis)
	replaced := false
	for i := range kpis {
		if kpis[i].ID == k.ID {
			kpis[i] = k
			replaced = true
		}
	}
	if !replaced {
		return false, nil
	}

	if err := s.repo.Save(ctx, repository.KPIsKey, kpis); err != nil {
		return false, fmt.Errorf("failed to persist kpis: %w", err)
	}
	s.kpis = kpis
	return true, nil
}

func cloneEmployees(in []models.Employee) []models.Employee {
	return append(make([]models.Employee, 0, len(in)), in...)
}

func cloneKPIs(in []models.KPI) []models.KPI {
	return append(make([]models.KPI, 0, len(in)), in...)
}
