package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPI_Normalize(t *testing.T) {
	k := KPI{
		StartDate:  "2024-06-15",
		Completion: 85,
		Result:     ResultNotMet,
		Month:      1,
		Year:       1999,
	}

	require.NoError(t, k.Normalize())
	assert.Equal(t, 6, k.Month)
	assert.Equal(t, 2024, k.Year)
	assert.Equal(t, ResultGood, k.Result)
}

func TestKPI_NormalizeRejectsBadDate(t *testing.T) {
	for _, date := range []string{"", "2024/06/01", "2024-13-01", "June"} {
		k := KPI{StartDate: date}
		assert.Error(t, k.Normalize(), "date %q", date)
	}
}

func TestKPI_SetCompletion(t *testing.T) {
	var k KPI
	k.SetCompletion(100)
	assert.Equal(t, ResultExcellent, k.Result)

	k.SetCompletion(49)
	assert.Equal(t, 49.0, k.Completion)
	assert.Equal(t, ResultNotMet, k.Result)
}

func TestKPIInput_ToKPIFloorsNegativeCompletion(t *testing.T) {
	in := KPIInput{Name: "Doanh số", StartDate: "2024-07-01", Completion: -12.5}

	k := in.ToKPI("kpi1")
	assert.Equal(t, 0.0, k.Completion)

	require.NoError(t, k.Normalize())
	assert.Equal(t, ResultNotMet, k.Result)
}

func TestKPIInput_ToKPIDropsDerivedFields(t *testing.T) {
	in := KPIInput{Name: "Doanh số", StartDate: "2024-07-01", Completion: 110, AssigneeID: "emp1", ApproverID: BoardSentinel}

	k := in.ToKPI("kpi1")
	assert.Equal(t, "kpi1", k.ID)
	assert.Empty(t, k.Result)
	assert.Zero(t, k.Month)

	require.NoError(t, k.Normalize())
	assert.Equal(t, ResultExcellent, k.Result)
	assert.Equal(t, 7, k.Month)
}
