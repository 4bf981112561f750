package services

import (
	"context"
	"testing"

	"kpidashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Overview(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(seededStore(t))

	overview := svc.Overview(ctx, 2024, 7, models.CompareByTeam, "")

	assert.Equal(t, 2, overview.Headline.TotalKPIs)
	assert.Equal(t, 1, overview.Headline.AchievedKPIs)
	assert.Equal(t, "85.00", overview.Headline.AverageCompletion)

	require.Len(t, overview.Annual, 12)
	assert.Equal(t, 90.0, overview.Annual[5].Completion)
	assert.Equal(t, 85.0, overview.Annual[6].Completion)

	assert.Equal(t, []models.ComparisonEntry{
		{Name: "Kinh doanh", Completion: 110},
		{Name: "Kỹ thuật", Completion: 60},
	}, overview.Comparison)

	assert.Equal(t, []int{1, 0, 1, 0}, values(overview.Status))
}

func TestDashboardService_TeamScopedViews(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(seededStore(t))

	assert.Equal(t, []models.ComparisonEntry{{Name: "Cường", Completion: 60}},
		svc.Comparison(ctx, 2024, 7, models.CompareByEmployee, "Kỹ thuật"))
	assert.Equal(t, []int{0, 0, 1, 0}, values(svc.StatusDistribution(ctx, 2024, 7, "Kỹ thuật")))

	// the headline always covers the whole company
	assert.Equal(t, 2, svc.Headline(ctx, 2024, 7).TotalKPIs)
}

func TestDashboardService_ReportInputScopes(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(seededStore(t))

	company, err := svc.ReportInput(ctx, models.ReportRequest{Year: 2024, Month: 7})
	require.NoError(t, err)
	assert.Equal(t, models.ScopeCompany, company.Scope)
	assert.Equal(t, models.CompanyScopeName, company.ScopeName)
	assert.Equal(t, []string{"k1", "k2"}, ids(company.KPIs))
	assert.Len(t, company.Employees, 4)

	team, err := svc.ReportInput(ctx, models.ReportRequest{Year: 2024, Month: 7, Team: "Kinh doanh"})
	require.NoError(t, err)
	assert.Equal(t, models.ScopeTeam, team.Scope)
	assert.Equal(t, "Kinh doanh", team.ScopeName)
	assert.Equal(t, []string{"k1"}, ids(team.KPIs))

	employee, err := svc.ReportInput(ctx, models.ReportRequest{Year: 2024, Month: 6, Team: "Kỹ thuật", EmployeeID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, models.ScopeEmployee, employee.Scope)
	assert.Equal(t, "Bích", employee.ScopeName)
	assert.Equal(t, []string{"k3"}, ids(employee.KPIs))

	_, err = svc.ReportInput(ctx, models.ReportRequest{Year: 2024, Month: 7, EmployeeID: "missing"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
