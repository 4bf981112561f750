package services

import (
	"context"
	"testing"

	"kpidashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *RecordStore {
	t.Helper()
	employees := []models.Employee{
		{ID: "m1", Name: "An", Department: "Kinh doanh", Role: models.RoleManager, TeamLead: models.BoardSentinel, Status: models.StatusActive},
		{ID: "s1", Name: "Bích", Department: "Kinh doanh", Role: "Nhân viên", TeamLead: "An", Status: models.StatusActive},
		{ID: "s2", Name: "Cường", Department: "Kỹ thuật", Role: "Nhân viên", Status: models.StatusActive},
		{ID: "old", Name: "Dũng", Department: "Kỹ thuật", Role: models.RoleManager, Status: models.StatusInactive},
	}
	kpis := []models.KPI{
		{ID: "k1", Name: "Doanh số", StartDate: "2024-07-01", AssigneeID: "s1", ApproverID: "m1", Completion: 110},
		{ID: "k2", Name: "Module A", StartDate: "2024-07-05", AssigneeID: "s2", ApproverID: models.BoardSentinel, Completion: 60},
		{ID: "k3", Name: "Doanh số", StartDate: "2024-06-01", AssigneeID: "s1", ApproverID: "m1", Completion: 90},
	}
	for i := range kpis {
		require.NoError(t, kpis[i].Normalize())
	}
	return newTestStore(t, nil, WithSeed(employees, kpis), WithIDGenerator(sequentialIDs()))
}

func validKPIInput() models.KPIInput {
	return models.KPIInput{
		Name:       "Tỷ lệ chuyển đổi",
		Target:     5,
		StartDate:  "2024-07-10",
		AssigneeID: "s1",
		ApproverID: "m1",
		Completion: 85,
	}
}

func ids(kpis []models.KPI) []string {
	out := make([]string, 0, len(kpis))
	for _, k := range kpis {
		out = append(out, k.ID)
	}
	return out
}

func TestKPIService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	assert.Equal(t, []string{"k1", "k2"}, ids(svc.ListKPIs(ctx, models.KPIFilter{Year: 2024, Month: 7})))
	assert.Equal(t, []string{"k3"}, ids(svc.ListKPIs(ctx, models.KPIFilter{Year: 2024, Month: 6})))
	assert.Equal(t, []string{"k2"}, ids(svc.ListKPIs(ctx, models.KPIFilter{Year: 2024, Month: 7, Department: "Kỹ thuật"})))
	assert.Equal(t, []string{"k1"}, ids(svc.ListKPIs(ctx, models.KPIFilter{Year: 2024, Month: 7, AssigneeID: "s1"})))
	assert.Equal(t, []string{"k2"}, ids(svc.ListKPIs(ctx, models.KPIFilter{Year: 2024, Month: 7, Result: models.ResultNeedsImprovement})))
	assert.Empty(t, svc.ListKPIs(ctx, models.KPIFilter{Year: 2023, Month: 7}))
}

func TestKPIService_Get(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	k, err := svc.GetKPI(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, models.ResultExcellent, k.Result)

	_, err = svc.GetKPI(ctx, "missing")
	assert.ErrorIs(t, err, ErrKPINotFound)
}

func TestKPIService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	k, err := svc.CreateKPI(ctx, validKPIInput())
	require.NoError(t, err)
	assert.Equal(t, "kpi-1", k.ID)
	assert.Equal(t, models.ResultGood, k.Result)
	assert.Equal(t, 7, k.Month)
	assert.Equal(t, 2024, k.Year)

	in := validKPIInput()
	in.ApproverID = models.BoardSentinel
	_, err = svc.CreateKPI(ctx, in)
	assert.NoError(t, err)
}

func TestKPIService_CreateRejectsInvalidReferences(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	tests := []struct {
		name   string
		modify func(*models.KPIInput)
		field  string
	}{
		{"unknown assignee", func(in *models.KPIInput) { in.AssigneeID = "nobody" }, "assigneeId"},
		{"inactive assignee", func(in *models.KPIInput) { in.AssigneeID = "old" }, "assigneeId"},
		{"approver is not a manager", func(in *models.KPIInput) { in.ApproverID = "s2" }, "approverId"},
		{"inactive manager approver", func(in *models.KPIInput) { in.ApproverID = "old" }, "approverId"},
		{"unknown approver", func(in *models.KPIInput) { in.ApproverID = "nobody" }, "approverId"},
		{"bad start date", func(in *models.KPIInput) { in.StartDate = "2024-13-01" }, "startDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validKPIInput()
			tt.modify(&in)

			_, err := svc.CreateKPI(ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestKPIService_Update(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewKPIService(store)

	in := validKPIInput()
	in.Completion = 40
	k, err := svc.UpdateKPI(ctx, "k1", in)
	require.NoError(t, err)
	assert.Equal(t, "k1", k.ID)
	assert.Equal(t, models.ResultNotMet, k.Result)

	before := store.KPIs()
	missing, err := svc.UpdateKPI(ctx, "missing", validKPIInput())
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Equal(t, before, store.KPIs())
}

func TestKPIService_UpdateClampsNegativeCompletion(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	in := validKPIInput()
	in.Completion = -20
	k, err := svc.UpdateKPI(ctx, "k2", in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, k.Completion)
	assert.Equal(t, models.ResultNotMet, k.Result)
}

func TestKPIService_UpdateCompletion(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	k, err := svc.UpdateCompletion(ctx, "k2", -5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, k.Completion)
	assert.Equal(t, models.ResultNotMet, k.Result)

	k, err = svc.UpdateCompletion(ctx, "k2", 80)
	require.NoError(t, err)
	assert.Equal(t, models.ResultGood, k.Result)

	_, err = svc.UpdateCompletion(ctx, "missing", 80)
	assert.ErrorIs(t, err, ErrKPINotFound)
}

func TestKPIService_UpdateCompletionAfterDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	_, err := svc.GetKPI(ctx, "k2")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteKPI(ctx, "k2"))

	k, err := svc.UpdateCompletion(ctx, "k2", 80)
	assert.ErrorIs(t, err, ErrKPINotFound)
	assert.Nil(t, k)
}

func TestKPIService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := NewKPIService(seededStore(t))

	require.NoError(t, svc.DeleteKPI(ctx, "k2"))
	_, err := svc.GetKPI(ctx, "k2")
	assert.ErrorIs(t, err, ErrKPINotFound)
}
