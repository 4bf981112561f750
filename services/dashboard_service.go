package services

import (
	"context"

	"kpidashboard/models"
)

type DashboardService interface {
	AnnualTrend(ctx context.Context, year int) []models.MonthlyStat
	Comparison(ctx context.Context, year, month int, mode models.ComparisonMode, team string) []models.ComparisonEntry
	StatusDistribution(ctx context.Context, year, month int, team string) []models.StatusCount
	Headline(ctx context.Context, year, month int) models.HeadlineStats
	Overview(ctx context.Context, year, month int, mode models.ComparisonMode, team string) models.DashboardOverview
	// ReportInput scopes one month of KPIs for a report: a single employee,
	// a team, or the whole company.
	ReportInput(ctx context.Context, req models.ReportRequest) (models.ReportInput, error)
}

type dashboardService struct {
	store *RecordStore
}

func NewDashboardService(store *RecordStore) DashboardService {
	return &dashboardService{store: store}
}

func (s *dashboardService) AnnualTrend(ctx context.Context, year int) []models.MonthlyStat {
	return AnnualTrend(s.store.KPIs(), year)
}

func (s *dashboardService) Comparison(ctx context.Context, year, month int, mode models.ComparisonMode, team string) []models.ComparisonEntry {
	employees, kpis := s.store.Snapshot()
	return Compare(kpis, employees, year, month, mode, team)
}

func (s *dashboardService) StatusDistribution(ctx context.Context, year, month int, team string) []models.StatusCount {
	employees, kpis := s.store.Snapshot()
	return StatusDistribution(kpis, employees, year, month, team)
}

func (s *dashboardService) Headline(ctx context.Context, year, month int) models.HeadlineStats {
	return Headline(s.store.KPIs(), year, month)
}

func (s *dashboardService) Overview(ctx context.Context, year, month int, mode models.ComparisonMode, team string) models.DashboardOverview {
	employees, kpis := s.store.Snapshot()
	return models.DashboardOverview{
		Headline:   Headline(kpis, year, month),
		Annual:     AnnualTrend(kpis, year),
		Comparison: Compare(kpis, employees, year, month, mode, team),
		Status:     StatusDistribution(kpis, employees, year, month, team),
	}
}

func (s *dashboardService) ReportInput(ctx context.Context, req models.ReportRequest) (models.ReportInput, error) {
	employees, kpis := s.store.Snapshot()
	monthly := MonthlyKPIs(kpis, req.Year, req.Month)

	input := models.ReportInput{
		Employees: employees,
		Month:     req.Month,
		Year:      req.Year,
	}

	switch {
	case req.EmployeeID != "":
		e, ok := indexEmployees(employees)[req.EmployeeID]
		if !ok {
			return models.ReportInput{}, ErrEmployeeNotFound
		}
		scoped := make([]models.KPI, 0)
		for _, k := range monthly {
			if k.AssigneeID == e.ID {
				scoped = append(scoped, k)
			}
		}
		input.KPIs = scoped
		input.Scope = models.ScopeEmployee
		input.ScopeName = e.Name
	case req.Team != "":
		input.KPIs = TeamFilter(monthly, employees, req.Team)
		input.Scope = models.ScopeTeam
		input.ScopeName = req.Team
	default:
		input.KPIs = monthly
		input.Scope = models.ScopeCompany
		input.ScopeName = models.CompanyScopeName
	}
	return input, nil
}
