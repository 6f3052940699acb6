// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/band-planner/export"
	"github.com/danielhkuo/band-planner/middleware"
	"github.com/danielhkuo/band-planner/store"
)

type ExportHandler struct {
	store store.Store
}

func NewExportHandler(st store.Store) *ExportHandler {
	return &ExportHandler{store: st}
}

// Export handles GET /polls/{id}/export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	poll, ok := loadPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}

	// Render fully before writing so a failure can still become a 500
	var buf bytes.Buffer
	if err := export.WriteTSV(&buf, &poll); err != nil {
		slog.Error("failed to render export", "poll_id", poll.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export poll")
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(&poll)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Summary handles GET /polls/{id}/summary
func (h *ExportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	poll, ok := loadPoll(r.Context(), h.store, w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, export.Summary(&poll))
}
