// Package store persists users and their reminder definitions.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record matches the query.
var ErrNotFound = errors.New("record not found")

// User is a chat participant with a remembered city and language.
type User struct {
	ID       int64
	ChatID   int64
	Username string
	City     string
	Language string
}

// Reminder is a persisted daily job definition. JobID ties the row to the
// scheduler's job so the two can be created and torn down together.
type Reminder struct {
	ID           int64
	UserID       int64
	JobID        string
	Hours        int
	Minutes      int
	IsPhenomenon bool
}

// Store is the contract both the postgres store and the in-memory test
// store satisfy.
type Store interface {
	UpsertUser(ctx context.Context, user User) (User, error)
	UserByChatID(ctx context.Context, chatID int64) (User, error)
	UserByID(ctx context.Context, id int64) (User, error)

	CreateReminder(ctx context.Context, rem Reminder) (Reminder, error)
	DeleteReminder(ctx context.Context, id int64) error
	RemindersByUser(ctx context.Context, userID int64) ([]Reminder, error)
	// Reminders lists every persisted reminder, for re-registering jobs on
	// process start.
	Reminders(ctx context.Context) ([]Reminder, error)
	// DeletePhenomenonReminders removes a user's phenomenon reminders and
	// returns the deleted rows so the caller can cancel their jobs.
	DeletePhenomenonReminders(ctx context.Context, userID int64) ([]Reminder, error)
}
