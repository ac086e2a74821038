package jobs

import (
	"context"

	"github.com/rfarias/garimpo/internal/report"
)

// ReportWarmJob forces a ranking recomputation off-peak so the first
// request of the day never waits for a full-market scan.
type ReportWarmJob struct {
	name     string
	schedule string
	service  *report.Service
}

// NewReportWarmJob creates a warm-up job for one report source.
func NewReportWarmJob(name, schedule string, service *report.Service) *ReportWarmJob {
	return &ReportWarmJob{
		name:     name,
		schedule: schedule,
		service:  service,
	}
}

func (j *ReportWarmJob) Name() string     { return j.name }
func (j *ReportWarmJob) Schedule() string { return j.schedule }

func (j *ReportWarmJob) Run(ctx context.Context) error {
	_, err := j.service.Report(ctx, true)
	return err
}
