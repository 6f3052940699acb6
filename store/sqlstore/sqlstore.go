// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sqlstore implements store.Store on database/sql. It runs on
// PostgreSQL through lib/pq and on SQLite through modernc.org/sqlite.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/band-planner/db"
	"github.com/danielhkuo/band-planner/models"
	"github.com/danielhkuo/band-planner/store"
)

// Driver names accepted by Open
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Store struct {
	db *sql.DB
}

// Open connects, verifies the connection and creates the schema
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if driver == DriverSQLite {
		// A single connection keeps ":memory:" databases shared and
		// serializes writers.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{db: conn}, nil
}

// New wraps an existing connection whose schema is already in place
func New(conn *sql.DB) *Store {
	return &Store{db: conn}
}

// DB exposes the underlying connection
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) CreatePoll(ctx context.Context, poll models.Poll) error {
	dates, err := json.Marshal(poll.Dates)
	if err != nil {
		return fmt.Errorf("failed to encode dates: %w", err)
	}
	participants, err := json.Marshal(poll.Participants)
	if err != nil {
		return fmt.Errorf("failed to encode participants: %w", err)
	}
	instruments, err := json.Marshal(poll.Instruments)
	if err != nil {
		return fmt.Errorf("failed to encode instruments: %w", err)
	}
	responses, err := encodeResponses(poll.Responses)
	if err != nil {
		return err
	}
	planning, err := encodePlanning(poll.Planning)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO poll (id, title, description, duration, created_at, dates, participants, instruments, responses, planning, deletion_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, poll.ID, poll.Title, poll.Description, poll.Duration,
		poll.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(dates), string(participants), string(instruments),
		responses, planning, poll.DeletionToken)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

func (s *Store) LoadPoll(ctx context.Context, id string) (models.Poll, error) {
	var (
		poll                                        models.Poll
		createdAt, dates, participants, instruments string
		responses                                   string
		planning                                    sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, duration, created_at, dates, participants, instruments, responses, planning, deletion_token
		FROM poll
		WHERE id = $1
	`, id).Scan(&poll.ID, &poll.Title, &poll.Description, &poll.Duration, &createdAt,
		&dates, &participants, &instruments, &responses, &planning, &poll.DeletionToken)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, store.ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to load poll: %w", err)
	}

	poll.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("invalid created_at for poll %s: %w", id, err)
	}
	fields := []struct {
		name string
		raw  string
		dst  any
	}{
		{"dates", dates, &poll.Dates},
		{"participants", participants, &poll.Participants},
		{"instruments", instruments, &poll.Instruments},
		{"responses", responses, &poll.Responses},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return models.Poll{}, fmt.Errorf("invalid %s for poll %s: %w", f.name, id, err)
		}
	}
	if planning.Valid {
		if err := json.Unmarshal([]byte(planning.String), &poll.Planning); err != nil {
			return models.Poll{}, fmt.Errorf("invalid planning for poll %s: %w", id, err)
		}
	}
	if poll.Responses == nil {
		poll.Responses = []models.Response{}
	}

	return poll, nil
}

func (s *Store) DeletePoll(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	return requireRow(result)
}

func (s *Store) ReplaceResponses(ctx context.Context, id string, responses []models.Response) error {
	encoded, err := encodeResponses(responses)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE poll SET responses = $1 WHERE id = $2`, encoded, id)
	if err != nil {
		return fmt.Errorf("failed to update responses: %w", err)
	}
	return requireRow(result)
}

func (s *Store) ReplacePlanning(ctx context.Context, id string, planning models.Planning) error {
	encoded, err := encodePlanning(planning)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `UPDATE poll SET planning = $1 WHERE id = $2`, encoded, id)
	if err != nil {
		return fmt.Errorf("failed to update planning: %w", err)
	}
	return requireRow(result)
}

func (s *Store) ReplaceRoster(ctx context.Context, id string, participants, instruments []string) error {
	p, err := json.Marshal(nonNil(participants))
	if err != nil {
		return fmt.Errorf("failed to encode participants: %w", err)
	}
	i, err := json.Marshal(nonNil(instruments))
	if err != nil {
		return fmt.Errorf("failed to encode instruments: %w", err)
	}
	result, err := s.db.ExecContext(ctx, `UPDATE poll SET participants = $1, instruments = $2 WHERE id = $3`, string(p), string(i), id)
	if err != nil {
		return fmt.Errorf("failed to update roster: %w", err)
	}
	return requireRow(result)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func encodeResponses(responses []models.Response) (string, error) {
	if responses == nil {
		responses = []models.Response{}
	}
	b, err := json.Marshal(responses)
	if err != nil {
		return "", fmt.Errorf("failed to encode responses: %w", err)
	}
	return string(b), nil
}

func encodePlanning(planning models.Planning) (sql.NullString, error) {
	if planning == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(planning)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode planning: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
