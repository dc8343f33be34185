// Package scheduler owns the background job registry for reminders.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scheduler wraps gocron with a job-id based registry so callers can tie a
// persisted reminder row to exactly one scheduled job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	log       zerolog.Logger
}

// New creates a Scheduler firing in the given timezone. Reminder times are
// wall-clock times in the user's timezone, so the zone matters.
func New(tz *time.Location, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(tz),
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Start launches the underlying scheduler loop.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop stops the scheduler and drops all registered jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// ScheduleDaily registers fn to run every day at hours:minutes and returns
// the job id. Firings of one job never overlap: a tick that arrives while
// the previous run is still going is skipped.
func (s *Scheduler) ScheduleDaily(hours, minutes int, fn func()) (string, error) {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return "", fmt.Errorf("invalid reminder time %02d:%02d", hours, minutes)
	}

	jobID := uuid.NewString()
	at := fmt.Sprintf("%02d:%02d", hours, minutes)

	_, err := s.scheduler.Every(1).Day().At(at).Tag(jobID).SingletonMode().Do(fn)
	if err != nil {
		return "", fmt.Errorf("schedule daily job at %s: %w", at, err)
	}

	s.log.Debug().Str("job_id", jobID).Str("at", at).Msg("scheduled daily job")
	return jobID, nil
}

// ScheduleDailyWithID re-registers a job under an existing id, used when
// reloading persisted reminders on process start.
func (s *Scheduler) ScheduleDailyWithID(jobID string, hours, minutes int, fn func()) error {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fmt.Errorf("invalid reminder time %02d:%02d", hours, minutes)
	}

	at := fmt.Sprintf("%02d:%02d", hours, minutes)
	_, err := s.scheduler.Every(1).Day().At(at).Tag(jobID).SingletonMode().Do(fn)
	if err != nil {
		return fmt.Errorf("reschedule job %s at %s: %w", jobID, at, err)
	}
	return nil
}

// Cancel removes the job with the given id. Cancelling an unknown id is not
// an error: the row may belong to a job that never got registered after a
// crash.
func (s *Scheduler) Cancel(jobID string) {
	if err := s.scheduler.RemoveByTag(jobID); err != nil {
		s.log.Warn().Err(err).Str("job_id", jobID).Msg("cancel: job not registered")
	}
}
