// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store defines the persistence port for polls. Implementations live
// in store/sqlstore (PostgreSQL and SQLite) and store/mongostore (MongoDB).
//
// Each Replace method is a single-field atomic update keyed by poll ID and
// returns ErrNotFound when no poll matched. Concurrent writers to the same
// field follow last-writer-wins.
package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/band-planner/models"
)

var ErrNotFound = errors.New("poll not found")

type Store interface {
	CreatePoll(ctx context.Context, poll models.Poll) error
	LoadPoll(ctx context.Context, id string) (models.Poll, error)
	DeletePoll(ctx context.Context, id string) error
	ReplaceResponses(ctx context.Context, id string, responses []models.Response) error
	ReplacePlanning(ctx context.Context, id string, planning models.Planning) error
	ReplaceRoster(ctx context.Context, id string, participants, instruments []string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
