package jobs

import (
	"context"
	"fmt"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/pkg/logger"
)

// CalendarSyncJob pulls the economic calendar for each configured country
// and persists the normalized events.
type CalendarSyncJob struct {
	provider  contracts.CalendarProvider
	store     contracts.CalendarStore
	countries []string
	schedule  string
	logger    *logger.Logger
}

// NewCalendarSyncJob creates the daily calendar sync.
func NewCalendarSyncJob(
	provider contracts.CalendarProvider,
	store contracts.CalendarStore,
	countries []string,
	schedule string,
	log *logger.Logger,
) *CalendarSyncJob {
	return &CalendarSyncJob{
		provider:  provider,
		store:     store,
		countries: countries,
		schedule:  schedule,
		logger:    log,
	}
}

func (j *CalendarSyncJob) Name() string     { return "calendar-sync" }
func (j *CalendarSyncJob) Schedule() string { return j.schedule }

// Run syncs every country; one country failing does not stop the others,
// but any failure marks the run failed so the scheduler retries.
func (j *CalendarSyncJob) Run(ctx context.Context) error {
	var firstErr error

	for _, country := range j.countries {
		events, err := j.provider.Events(ctx, country)
		if err != nil {
			j.logger.WithError(err).WithField("country", country).Warn("Calendar fetch failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("fetch %s: %w", country, err)
			}
			continue
		}

		if err := j.store.SaveEvents(ctx, events); err != nil {
			j.logger.WithError(err).WithField("country", country).Warn("Calendar save failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("save %s: %w", country, err)
			}
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"country": country,
			"events":  len(events),
		}).Info("Calendar synced")
	}

	return firstErr
}
