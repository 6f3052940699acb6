// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/band-planner/cliparse"
	"github.com/danielhkuo/band-planner/middleware"
	"github.com/danielhkuo/band-planner/models"
	"github.com/danielhkuo/band-planner/planning"
	"github.com/danielhkuo/band-planner/store"
)

type PlanningHandler struct {
	store    store.Store
	cfg      cliparse.Config
	composer planning.Composer
}

func NewPlanningHandler(st store.Store, cfg cliparse.Config) *PlanningHandler {
	return &PlanningHandler{
		store:    st,
		cfg:      cfg,
		composer: planning.NewComposer(cfg.PriorityInstruments),
	}
}

// Compose handles POST /polls/{id}/planning/compose
// Runs the composition engine on the current responses. Nothing is saved.
func (h *PlanningHandler) Compose(w http.ResponseWriter, r *http.Request) {
	poll, ok := loadAdminPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	p := h.composer.Compose(&poll)

	slog.Info("planning composed", "poll_id", poll.ID, "responses", len(poll.Responses))
	middleware.JSONResponse(w, http.StatusOK, models.PlanningResponse{Planning: p})
}

// SavePlanning handles PUT /polls/{id}/planning
func (h *PlanningHandler) SavePlanning(w http.ResponseWriter, r *http.Request) {
	poll, ok := loadAdminPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	var req models.SavePlanningRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := planning.Validate(&poll, req.Planning)
	if err != nil {
		writeError(w, err, "invalid planning", "poll_id", poll.ID)
		return
	}

	if err := h.store.ReplacePlanning(r.Context(), poll.ID, p); err != nil {
		writeError(w, err, "failed to save planning", "poll_id", poll.ID)
		return
	}

	slog.Info("planning saved", "poll_id", poll.ID)
	middleware.JSONResponse(w, http.StatusOK, models.PlanningResponse{Planning: p})
}

// SetCell handles PATCH /polls/{id}/planning/cell
// Sets or clears a single cell of the saved planning
func (h *PlanningHandler) SetCell(w http.ResponseWriter, r *http.Request) {
	var req models.CellEditRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	defer lockPoll(r.PathValue("id"))()

	poll, ok := loadAdminPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	p, err := planning.SetCell(&poll, poll.Planning, req.Date, req.Instrument, req.Assignment)
	if err != nil {
		writeError(w, err, "invalid cell edit", "poll_id", poll.ID)
		return
	}

	if err := h.store.ReplacePlanning(r.Context(), poll.ID, p); err != nil {
		writeError(w, err, "failed to save planning", "poll_id", poll.ID)
		return
	}

	slog.Info("planning cell updated",
		"poll_id", poll.ID,
		"date", req.Date,
		"instrument", req.Instrument,
		"cleared", req.Assignment == nil,
	)
	middleware.JSONResponse(w, http.StatusOK, models.PlanningResponse{Planning: p})
}

// Candidates handles GET /polls/{id}/planning/candidates?date=&instrument=
func (h *PlanningHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	poll, ok := loadAdminPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	instrument := r.URL.Query().Get("instrument")
	if !poll.HasDate(date) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown date "+date)
		return
	}
	if !poll.HasInstrument(instrument) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown instrument "+instrument)
		return
	}

	candidates := planning.Candidates(&poll, date, instrument)
	if candidates == nil {
		candidates = []models.Candidate{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		Date:       date,
		Instrument: instrument,
		Candidates: candidates,
	})
}
