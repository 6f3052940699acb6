// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/band-planner/auth"
	"github.com/danielhkuo/band-planner/middleware"
	"github.com/danielhkuo/band-planner/models"
	"github.com/danielhkuo/band-planner/store"
)

// pollID reads the {id} path value. Anything that is not a UUID cannot name a
// poll and is answered with 404 without touching the store.
func pollID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return "", false
	}
	return id, true
}

// writeError maps domain and store errors onto HTTP responses
func writeError(w http.ResponseWriter, err error, msg string, args ...any) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, auth.ErrInvalidAdminKey):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
	default:
		slog.Error(msg, append(args, "error", err)...)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// loadPoll resolves the {id} path value to a stored poll
func loadPoll(ctx context.Context, st store.Store, w http.ResponseWriter, r *http.Request) (models.Poll, bool) {
	id, ok := pollID(w, r)
	if !ok {
		return models.Poll{}, false
	}
	poll, err := st.LoadPoll(ctx, id)
	if err != nil {
		writeError(w, err, "failed to load poll", "poll_id", id)
		return models.Poll{}, false
	}
	return poll, true
}

// loadAdminPoll is loadPoll plus an X-Admin-Key check against the poll's token
func loadAdminPoll(ctx context.Context, st store.Store, w http.ResponseWriter, r *http.Request) (models.Poll, bool) {
	poll, ok := loadPoll(ctx, st, w, r)
	if !ok {
		return models.Poll{}, false
	}
	if err := auth.ValidateAdminKey(poll.DeletionToken, r.Header.Get(auth.AdminKeyHeader)); err != nil {
		slog.Warn("admin key rejected", "poll_id", poll.ID)
		writeError(w, err, "admin key rejected")
		return models.Poll{}, false
	}
	return poll, true
}

// pollLocks serializes read-modify-write sequences on the same poll within
// this process. Writers in other processes still follow last-writer-wins.
var pollLocks [64]sync.Mutex

// lockPoll locks the stripe for id and returns the unlock function.
// Callers read the request body before locking.
func lockPoll(id string) func() {
	h := fnv.New32a()
	h.Write([]byte(id))
	mu := &pollLocks[h.Sum32()%uint32(len(pollLocks))]
	mu.Lock()
	return mu.Unlock
}
