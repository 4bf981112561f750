package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kpidashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	text    string
	err     error
	block   bool
	calls   atomic.Int32
	prompts chan string
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.calls.Add(1)
	if p.prompts != nil {
		p.prompts <- prompt
	}
	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return p.text, p.err
}

func sampleReportInput() models.ReportInput {
	return models.ReportInput{
		KPIs: []models.KPI{
			{ID: "k1", Name: "Doanh số", Objective: "Tăng doanh số", AssigneeID: "e1", Completion: 110, Result: models.ResultExcellent},
			{ID: "k2", Name: "Tuyển dụng", AssigneeID: "gone", Completion: 40, Result: models.ResultNotMet},
		},
		Employees: []models.Employee{{ID: "e1", Name: "An"}},
		Month:     7,
		Year:      2024,
		Scope:     models.ScopeTeam,
		ScopeName: "Kinh doanh",
	}
}

func waitForJob(t *testing.T, svc ReportService, id string) models.ReportJob {
	t.Helper()
	var job models.ReportJob
	require.Eventually(t, func() bool {
		var err error
		job, err = svc.GetJob(id)
		return err == nil && job.Status.Done()
	}, 2*time.Second, 5*time.Millisecond)
	return job
}

func TestReportService_GenerateWithoutProvider(t *testing.T) {
	svc := NewReportService(nil, ReportOptions{})
	defer svc.Close()

	assert.Equal(t, MissingKeyReport, svc.Generate(context.Background(), sampleReportInput()))
}

func TestReportService_GenerateReturnsProviderText(t *testing.T) {
	provider := &fakeProvider{text: "# Báo cáo"}
	svc := NewReportService(provider, ReportOptions{})
	defer svc.Close()

	assert.Equal(t, "# Báo cáo", svc.Generate(context.Background(), sampleReportInput()))
	assert.EqualValues(t, 1, provider.calls.Load())
}

func TestReportService_GenerateFallsBackOnError(t *testing.T) {
	svc := NewReportService(&fakeProvider{err: errors.New("quota exceeded")}, ReportOptions{})
	defer svc.Close()

	assert.Equal(t, FailedReport, svc.Generate(context.Background(), sampleReportInput()))
}

func TestReportService_RequestCompletes(t *testing.T) {
	svc := NewReportService(&fakeProvider{text: "done"}, ReportOptions{Timeout: time.Second})
	defer svc.Close()

	input := sampleReportInput()
	job := svc.Request(context.Background(), input)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.ReportPending, job.Status)
	assert.Equal(t, 2, job.KPICount)
	assert.Equal(t, input.ScopeName, job.ScopeName)

	finished := waitForJob(t, svc, job.ID)
	assert.Equal(t, models.ReportCompleted, finished.Status)
	assert.Equal(t, "done", finished.Report)
	require.NotNil(t, finished.FinishedAt)
}

func TestReportService_RequestTimesOutWithFallback(t *testing.T) {
	svc := NewReportService(&fakeProvider{block: true}, ReportOptions{Timeout: 20 * time.Millisecond})
	defer svc.Close()

	job := svc.Request(context.Background(), sampleReportInput())
	finished := waitForJob(t, svc, job.ID)
	assert.Equal(t, models.ReportCompleted, finished.Status)
	assert.Equal(t, FailedReport, finished.Report)
}

func TestReportService_CancelJob(t *testing.T) {
	provider := &fakeProvider{block: true, prompts: make(chan string, 1)}
	svc := NewReportService(provider, ReportOptions{Timeout: time.Minute})
	defer svc.Close()

	job := svc.Request(context.Background(), sampleReportInput())
	<-provider.prompts

	cancelled, err := svc.CancelJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportCancelled, cancelled.Status)

	// the late result of the provider does not overwrite the cancellation
	finished := waitForJob(t, svc, job.ID)
	assert.Equal(t, models.ReportCancelled, finished.Status)
	assert.Empty(t, finished.Report)
}

func TestReportService_UnknownJob(t *testing.T) {
	svc := NewReportService(nil, ReportOptions{})
	defer svc.Close()

	_, err := svc.GetJob("missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
	_, err = svc.CancelJob("missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestReportService_PrunesFinishedJobs(t *testing.T) {
	svc := NewReportService(nil, ReportOptions{Retention: time.Hour}).(*reportService)
	defer svc.Close()

	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	old := svc.Request(context.Background(), sampleReportInput())
	waitForJob(t, svc, old.ID)

	now = now.Add(2 * time.Hour)
	fresh := svc.Request(context.Background(), sampleReportInput())
	waitForJob(t, svc, fresh.ID)

	_, err := svc.GetJob(old.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)
	_, err = svc.GetJob(fresh.ID)
	assert.NoError(t, err)
}

func TestBuildReportPrompt(t *testing.T) {
	prompt := BuildReportPrompt(sampleReportInput())

	assert.Contains(t, prompt, "tháng 7/2024")
	assert.Contains(t, prompt, "phòng ban 'Kinh doanh'")
	assert.Contains(t, prompt, `"nguoiThucHien": "An"`)
	assert.Contains(t, prompt, `"nguoiThucHien": "N/A"`)
	assert.Contains(t, prompt, `"tiLeHoanThanh": "110%"`)
	assert.Contains(t, prompt, `"ketQua": "Không đạt"`)
	assert.Contains(t, prompt, `"ketQua": "Xuất sắc"`)
	assert.NotContains(t, prompt, "NOT_MET")
	assert.True(t, strings.Index(prompt, "Doanh số") < strings.Index(prompt, "Tuyển dụng"))
}
