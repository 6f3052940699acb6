// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/band-planner/aggregate"
	"github.com/danielhkuo/band-planner/auth"
	"github.com/danielhkuo/band-planner/cliparse"
	"github.com/danielhkuo/band-planner/middleware"
	"github.com/danielhkuo/band-planner/models"
	"github.com/danielhkuo/band-planner/store"
)

type PollHandler struct {
	store store.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewPollHandler(st store.Store, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: st, cfg: cfg, now: time.Now}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := NewPoll(req)
	if err != nil {
		writeError(w, err, "invalid poll")
		return
	}

	// Generate admin key
	poll.DeletionToken, err = auth.GenerateAdminKey()
	if err != nil {
		slog.Error("failed to generate admin key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}
	poll.ID = uuid.NewString()
	poll.CreatedAt = h.now().UTC()

	if err := h.store.CreatePoll(r.Context(), poll); err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "dates", len(poll.Dates), "instruments", len(poll.Instruments))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		ID:            poll.ID,
		URL:           "/poll/" + poll.ID,
		DeletionToken: poll.DeletionToken,
	})
}

// NewPoll validates a creation request and returns the poll it describes.
// Dates are sorted and de-duplicated; names are trimmed and blanks dropped.
// Instruments are also de-duplicated case-insensitively, as in a roster merge.
func NewPoll(req models.CreatePollRequest) (models.Poll, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Poll{}, models.Invalid("title is required")
	}

	dates := trimAll(req.Dates)
	if len(dates) == 0 {
		return models.Poll{}, models.Invalid("at least one date is required")
	}
	for _, d := range dates {
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return models.Poll{}, models.Invalid("invalid date: %s", d)
		}
	}
	sort.Strings(dates)
	dates = dedupSorted(dates)

	participants := trimAll(req.Participants)
	if len(participants) == 0 {
		return models.Poll{}, models.Invalid("at least one participant is required")
	}
	instruments, _ := aggregate.MergeNames(nil, req.Instruments)
	if len(instruments) == 0 {
		return models.Poll{}, models.Invalid("at least one instrument is required")
	}

	return models.Poll{
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Duration:     strings.TrimSpace(req.Duration),
		Dates:        dates,
		Participants: participants,
		Instruments:  instruments,
		Responses:    []models.Response{},
	}, nil
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	poll, ok := loadPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	poll, ok := loadAdminPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	if err := h.store.DeletePoll(r.Context(), poll.ID); err != nil {
		writeError(w, err, "failed to delete poll", "poll_id", poll.ID)
		return
	}

	slog.Info("poll deleted", "poll_id", poll.ID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll deleted"})
}

// UpdateRoster handles PATCH /polls/{id}/roster
func (h *PollHandler) UpdateRoster(w http.ResponseWriter, r *http.Request) {
	var req models.RosterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	defer lockPoll(r.PathValue("id"))()

	poll, ok := loadAdminPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	roster := aggregate.MergeRoster(poll.Participants, poll.Instruments, req.NewParticipants, req.NewInstruments)

	if len(roster.AddedParticipants) > 0 || len(roster.AddedInstruments) > 0 {
		if err := h.store.ReplaceRoster(r.Context(), poll.ID, roster.Participants, roster.Instruments); err != nil {
			writeError(w, err, "failed to update roster", "poll_id", poll.ID)
			return
		}
		slog.Info("roster updated",
			"poll_id", poll.ID,
			"added_participants", len(roster.AddedParticipants),
			"added_instruments", len(roster.AddedInstruments),
		)
	}

	middleware.JSONResponse(w, http.StatusOK, models.RosterResponse{
		AddedParticipants: roster.AddedParticipants,
		AddedInstruments:  roster.AddedInstruments,
		Participants:      roster.Participants,
		Instruments:       roster.Instruments,
	})
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dedupSorted(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}
