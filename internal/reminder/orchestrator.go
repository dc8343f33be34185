// Package reminder ties persisted reminder rows to scheduled jobs and runs
// the weather pipeline when they fire.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/velikanov/weatherbot/internal/locale"
	"github.com/velikanov/weatherbot/internal/store"
	"github.com/velikanov/weatherbot/internal/weather"
)

// Reporter runs the weather pipeline for one request.
type Reporter interface {
	Report(ctx context.Context, cityInput string, mode weather.Mode, lang locale.Lang, now time.Time) (string, error)
}

// Sender delivers a formatted message to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Registry is the owned job scheduler the orchestrator registers firings
// with.
type Registry interface {
	ScheduleDaily(hours, minutes int, fn func()) (string, error)
	ScheduleDailyWithID(jobID string, hours, minutes int, fn func()) error
	Cancel(jobID string)
}

// fireTimeout bounds one reminder execution end to end.
const fireTimeout = 60 * time.Second

// Orchestrator keeps reminder rows and scheduler jobs consistent: a row
// never outlives its job and a job never outlives its row.
type Orchestrator struct {
	store    store.Store
	registry Registry
	reporter Reporter
	sender   Sender
	log      zerolog.Logger
}

func NewOrchestrator(st store.Store, registry Registry, reporter Reporter, sender Sender, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:    st,
		registry: registry,
		reporter: reporter,
		sender:   sender,
		log:      log.With().Str("component", "reminder").Logger(),
	}
}

// Create schedules a daily job and persists the reminder row carrying its
// job id. If persisting fails the job is cancelled again, so the scheduler
// never fires for a reminder that does not exist.
func (o *Orchestrator) Create(ctx context.Context, userID int64, hours, minutes int, phenomenon bool) (store.Reminder, error) {
	jobID, err := o.registry.ScheduleDaily(hours, minutes, o.fireFunc(userID, phenomenon))
	if err != nil {
		return store.Reminder{}, fmt.Errorf("schedule reminder: %w", err)
	}

	rem, err := o.store.CreateReminder(ctx, store.Reminder{
		UserID:       userID,
		JobID:        jobID,
		Hours:        hours,
		Minutes:      minutes,
		IsPhenomenon: phenomenon,
	})
	if err != nil {
		o.registry.Cancel(jobID)
		return store.Reminder{}, fmt.Errorf("persist reminder: %w", err)
	}

	o.log.Info().Int64("user_id", userID).Str("job_id", jobID).
		Bool("phenomenon", phenomenon).Msgf("reminder set for %02d:%02d", hours, minutes)
	return rem, nil
}

// Delete removes the reminder row and cancels its job.
func (o *Orchestrator) Delete(ctx context.Context, rem store.Reminder) error {
	if err := o.store.DeleteReminder(ctx, rem.ID); err != nil {
		return err
	}
	o.registry.Cancel(rem.JobID)
	return nil
}

// DeletePhenomena removes all of a user's phenomenon reminders and their
// jobs.
func (o *Orchestrator) DeletePhenomena(ctx context.Context, userID int64) error {
	deleted, err := o.store.DeletePhenomenonReminders(ctx, userID)
	if err != nil {
		return err
	}
	for _, rem := range deleted {
		o.registry.Cancel(rem.JobID)
	}
	return nil
}

// Reload re-registers every persisted reminder after a restart, keeping the
// stored job ids.
func (o *Orchestrator) Reload(ctx context.Context) error {
	reminders, err := o.store.Reminders(ctx)
	if err != nil {
		return fmt.Errorf("load reminders: %w", err)
	}

	for _, rem := range reminders {
		err := o.registry.ScheduleDailyWithID(rem.JobID, rem.Hours, rem.Minutes, o.fireFunc(rem.UserID, rem.IsPhenomenon))
		if err != nil {
			o.log.Error().Err(err).Str("job_id", rem.JobID).Msg("failed to re-register reminder")
		}
	}

	o.log.Info().Int("count", len(reminders)).Msg("reminders reloaded")
	return nil
}

func (o *Orchestrator) fireFunc(userID int64, phenomenon bool) func() {
	mode := weather.ModeNow
	if phenomenon {
		mode = weather.ModePhenomenon
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
		defer cancel()
		o.fire(ctx, userID, mode)
	}
}

// fire runs one reminder execution. Failures are scoped to this firing:
// they are logged and the next tick runs as scheduled.
func (o *Orchestrator) fire(ctx context.Context, userID int64, mode weather.Mode) {
	user, err := o.store.UserByID(ctx, userID)
	if err != nil {
		o.log.Error().Err(err).Int64("user_id", userID).Msg("reminder fired for missing user")
		return
	}

	lang := locale.Parse(user.Language)
	msg, err := o.reporter.Report(ctx, user.City, mode, lang, time.Now())
	if err != nil {
		o.log.Warn().Err(err).Int64("user_id", userID).Str("mode", string(mode)).Msg("reminder pipeline failed")
		return
	}
	if msg == "" {
		// Phenomenon reminders stay silent when nothing notable changes.
		return
	}

	if err := o.sender.SendMessage(ctx, user.ChatID, msg); err != nil {
		o.log.Warn().Err(err).Int64("chat_id", user.ChatID).Msg("reminder delivery failed")
	}
}
