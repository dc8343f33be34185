package store

import (
	"context"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory Store used in tests and local
// runs without a database.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[int64]User
	reminders map[int64]Reminder

	nextUserID     int64
	nextReminderID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[int64]User),
		reminders: make(map[int64]Reminder),
	}
}

// UpsertUser inserts the user or updates the existing row with the same
// chat id.
func (s *MemoryStore) UpsertUser(_ context.Context, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.users {
		if existing.ChatID == user.ChatID {
			user.ID = id
			s.users[id] = user
			return user, nil
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) UserByChatID(_ context.Context, chatID int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ChatID == chatID {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryStore) UserByID(_ context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) CreateReminder(_ context.Context, rem Reminder) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReminderID++
	rem.ID = s.nextReminderID
	s.reminders[rem.ID] = rem
	return rem, nil
}

func (s *MemoryStore) DeleteReminder(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reminders[id]; !ok {
		return ErrNotFound
	}
	delete(s.reminders, id)
	return nil
}

func (s *MemoryStore) RemindersByUser(_ context.Context, userID int64) ([]Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Reminder
	for _, rem := range s.reminders {
		if rem.UserID == userID {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (s *MemoryStore) Reminders(_ context.Context) ([]Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Reminder, 0, len(s.reminders))
	for _, rem := range s.reminders {
		out = append(out, rem)
	}
	return out, nil
}

func (s *MemoryStore) DeletePhenomenonReminders(_ context.Context, userID int64) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted []Reminder
	for id, rem := range s.reminders {
		if rem.UserID == userID && rem.IsPhenomenon {
			deleted = append(deleted, rem)
			delete(s.reminders, id)
		}
	}
	return deleted, nil
}
