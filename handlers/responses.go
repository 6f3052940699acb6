// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/band-planner/aggregate"
	"github.com/danielhkuo/band-planner/cliparse"
	"github.com/danielhkuo/band-planner/middleware"
	"github.com/danielhkuo/band-planner/models"
	"github.com/danielhkuo/band-planner/notify"
	"github.com/danielhkuo/band-planner/store"
)

type ResponseHandler struct {
	store      store.Store
	cfg        cliparse.Config
	aggregator *aggregate.Aggregator
	notifier   notify.Notifier
}

func NewResponseHandler(st store.Store, cfg cliparse.Config, n notify.Notifier) *ResponseHandler {
	if n == nil {
		n = notify.Noop{}
	}
	return &ResponseHandler{
		store:      st,
		cfg:        cfg,
		aggregator: aggregate.NewAggregator(cfg.RequireUpfrontInstrument),
		notifier:   n,
	}
}

// SubmitResponse handles POST /polls/{id}/responses
// Creates the participant's response or replaces the one with the same name
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	var sub models.Submission
	if err := middleware.ParseJSONBody(r, &sub); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	defer lockPoll(r.PathValue("id"))()

	poll, ok := loadPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	res, err := h.aggregator.Merge(&poll, sub)
	if err != nil {
		writeError(w, err, "invalid response", "poll_id", poll.ID)
		return
	}

	if err := h.store.ReplaceResponses(r.Context(), poll.ID, res.Responses); err != nil {
		writeError(w, err, "failed to save responses", "poll_id", poll.ID)
		return
	}
	poll.Responses = res.Responses

	slog.Info("response submitted", "poll_id", poll.ID, "name", res.Response.Name, "updated", res.Replaced)

	notify.Dispatch(h.notifier, notify.DefaultTimeout, &poll, res.Response, res.Replaced)

	msg := "Response saved"
	if res.Replaced {
		msg = "Response updated"
	}
	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponseResponse{
		Message: msg,
		Updated: res.Replaced,
		Poll:    poll,
	})
}
