package services

import (
	"context"
	"sync"
	"time"

	"kpidashboard/config"
	"kpidashboard/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	MissingKeyReport = "API Key is not configured. Please set up your API key to use this feature."
	FailedReport     = "Đã xảy ra lỗi khi tạo báo cáo. Vui lòng thử lại."
)

type ReportService interface {
	// Generate returns the report text for input. It never fails: problems
	// are turned into one of the fallback messages.
	Generate(ctx context.Context, input models.ReportInput) string
	// Request starts generating a report in the background and returns the pending job.
	Request(ctx context.Context, input models.ReportInput) models.ReportJob
	GetJob(id string) (models.ReportJob, error)
	CancelJob(id string) (models.ReportJob, error)
	// Close cancels running jobs and waits for them to finish.
	Close()
}

type ReportOptions struct {
	Timeout      time.Duration
	RateInterval time.Duration
	Retention    time.Duration
}

type reportJob struct {
	job    models.ReportJob
	cancel context.CancelFunc
}

type reportService struct {
	provider ReportProvider
	limiter  *rate.Limiter
	opts     ReportOptions

	mu   sync.Mutex
	jobs map[string]*reportJob

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time
}

// NewReportService creates the report service. A nil provider means no API
// key is configured.
func NewReportService(provider ReportProvider, opts ReportOptions) ReportService {
	ctx, cancel := context.WithCancel(context.Background())

	var limiter *rate.Limiter
	if opts.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RateInterval), 1)
	}

	return &reportService{
		provider: provider,
		limiter:  limiter,
		opts:     opts,
		jobs:     make(map[string]*reportJob),
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
}

func (s *reportService) Generate(ctx context.Context, input models.ReportInput) string {
	if s.provider == nil {
		return MissingKeyReport
	}

	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"scope":      input.Scope,
		"scope_name": input.ScopeName,
	})

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			log.WithError(err).Warn("Report request dropped while waiting for rate limit")
			return FailedReport
		}
	}

	text, err := s.provider.Generate(ctx, BuildReportPrompt(input))
	if err != nil {
		log.WithError(err).Error("Error generating report")
		return FailedReport
	}
	return text
}

func (s *reportService) Request(ctx context.Context, input models.ReportInput) models.ReportJob {
	s.prune()

	// The job outlives the HTTP request, so it runs on the service context.
	var (
		jobCtx context.Context
		cancel context.CancelFunc
	)
	if s.opts.Timeout > 0 {
		jobCtx, cancel = context.WithTimeout(s.ctx, s.opts.Timeout)
	} else {
		jobCtx, cancel = context.WithCancel(s.ctx)
	}

	job := models.ReportJob{
		ID:          uuid.NewString(),
		Status:      models.ReportPending,
		Scope:       input.Scope,
		ScopeName:   input.ScopeName,
		Month:       input.Month,
		Year:        input.Year,
		KPICount:    len(input.KPIs),
		RequestedAt: s.now(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = &reportJob{job: job, cancel: cancel}
	s.mu.Unlock()

	log := config.WithContext(ctx).WithField("report_id", job.ID)
	log.WithField("scope", input.Scope).Info("Report requested")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		s.setRunning(job.ID)
		text := s.Generate(jobCtx, input)

		if jobCtx.Err() == context.Canceled {
			s.finish(job.ID, models.ReportCancelled, "")
			log.Info("Report cancelled")
			return
		}
		s.finish(job.ID, models.ReportCompleted, text)
		log.Info("Report completed")
	}()

	return job
}

func (s *reportService) GetJob(id string) (models.ReportJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return models.ReportJob{}, ErrReportNotFound
	}
	return j.job, nil
}

// CancelJob stops a pending or running job. Finished jobs are returned unchanged.
func (s *reportService) CancelJob(id string) (models.ReportJob, error) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return models.ReportJob{}, ErrReportNotFound
	}
	if !j.job.Status.Done() {
		s.markDone(j, models.ReportCancelled, "")
	}
	job := j.job
	s.mu.Unlock()

	j.cancel()
	return job, nil
}

func (s *reportService) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *reportService) setRunning(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.jobs[id]; ok && j.job.Status == models.ReportPending {
		j.job.Status = models.ReportRunning
	}
}

// finish records the outcome of a job unless it was already settled.
func (s *reportService) finish(id string, status models.ReportStatus, report string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.jobs[id]; ok && !j.job.Status.Done() {
		s.markDone(j, status, report)
	}
}

func (s *reportService) markDone(j *reportJob, status models.ReportStatus, report string) {
	finished := s.now()
	j.job.Status = status
	j.job.Report = report
	j.job.FinishedAt = &finished
}

// prune drops finished jobs older than the retention period.
func (s *reportService) prune() {
	if s.opts.Retention <= 0 {
		return
	}
	cutoff := s.now().Add(-s.opts.Retention)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, j := range s.jobs {
		if j.job.Status.Done() && j.job.FinishedAt != nil && j.job.FinishedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}
