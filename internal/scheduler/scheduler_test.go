package scheduler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleDailyReturnsDistinctIDs(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	defer s.Stop()

	first, err := s.ScheduleDaily(8, 30, func() {})
	require.NoError(t, err)
	second, err := s.ScheduleDaily(8, 30, func() {})
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestScheduleDailyRejectsInvalidTime(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	defer s.Stop()

	_, err := s.ScheduleDaily(24, 0, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleDaily(8, 60, func() {})
	assert.Error(t, err)
	assert.Error(t, s.ScheduleDailyWithID("x", -1, 0, func() {}))
}

func TestCancelUnknownJobIsHarmless(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	defer s.Stop()

	assert.NotPanics(t, func() { s.Cancel("no-such-job") })
}

func TestCancelRemovesScheduledJob(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	defer s.Stop()

	id, err := s.ScheduleDaily(8, 30, func() {})
	require.NoError(t, err)

	s.Cancel(id)
	// Cancelling again hits the not-registered path without error.
	assert.NotPanics(t, func() { s.Cancel(id) })
}
