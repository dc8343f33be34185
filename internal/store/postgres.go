package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the production Store backed by a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool to the given database URL.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool resources.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const upsertUserSQL = `
    INSERT INTO users (chat_id, username, city, language)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (chat_id) DO UPDATE
    SET username = EXCLUDED.username,
        city = EXCLUDED.city,
        language = EXCLUDED.language
    RETURNING id
`

func (s *PostgresStore) UpsertUser(ctx context.Context, user User) (User, error) {
	err := s.pool.QueryRow(ctx, upsertUserSQL,
		user.ChatID, user.Username, user.City, user.Language,
	).Scan(&user.ID)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

const userByChatIDSQL = `
    SELECT id, chat_id, username, city, language
    FROM users
    WHERE chat_id = $1
`

func (s *PostgresStore) UserByChatID(ctx context.Context, chatID int64) (User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, userByChatIDSQL, chatID))
}

const userByIDSQL = `
    SELECT id, chat_id, username, city, language
    FROM users
    WHERE id = $1
`

func (s *PostgresStore) UserByID(ctx context.Context, id int64) (User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, userByIDSQL, id))
}

func (s *PostgresStore) scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.ChatID, &user.Username, &user.City, &user.Language)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

const createReminderSQL = `
    INSERT INTO reminders (user_id, job_id, hours, minutes, is_phenomenon)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id
`

func (s *PostgresStore) CreateReminder(ctx context.Context, rem Reminder) (Reminder, error) {
	err := s.pool.QueryRow(ctx, createReminderSQL,
		rem.UserID, rem.JobID, rem.Hours, rem.Minutes, rem.IsPhenomenon,
	).Scan(&rem.ID)
	if err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

func (s *PostgresStore) DeleteReminder(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const remindersByUserSQL = `
    SELECT id, user_id, job_id, hours, minutes, is_phenomenon
    FROM reminders
    WHERE user_id = $1
    ORDER BY id
`

func (s *PostgresStore) RemindersByUser(ctx context.Context, userID int64) ([]Reminder, error) {
	rows, err := s.pool.Query(ctx, remindersByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

const allRemindersSQL = `
    SELECT id, user_id, job_id, hours, minutes, is_phenomenon
    FROM reminders
    ORDER BY id
`

func (s *PostgresStore) Reminders(ctx context.Context) ([]Reminder, error) {
	rows, err := s.pool.Query(ctx, allRemindersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

const deletePhenomenonSQL = `
    DELETE FROM reminders
    WHERE user_id = $1 AND is_phenomenon
    RETURNING id, user_id, job_id, hours, minutes, is_phenomenon
`

func (s *PostgresStore) DeletePhenomenonReminders(ctx context.Context, userID int64) ([]Reminder, error) {
	rows, err := s.pool.Query(ctx, deletePhenomenonSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

func scanReminders(rows pgx.Rows) ([]Reminder, error) {
	var out []Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.JobID, &rem.Hours, &rem.Minutes, &rem.IsPhenomenon); err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}
