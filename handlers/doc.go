// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the band planner API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - PollHandler: create, read, delete, roster merge
  - ResponseHandler: availability submissions and notifications
  - PlanningHandler: composition, saving, cell edits, candidates
  - ExportHandler: TSV export and per-date summary

Handlers are created via constructor functions that accept a store.Store:

	pollHandler := handlers.NewPollHandler(st, cfg)
	responseHandler := handlers.NewResponseHandler(st, cfg, notifier)

# Admin Key

Creating a poll returns its deletionToken exactly once. Roster changes,
planning operations and deletion require it in the X-Admin-Key header;
a missing or wrong key is 401.

# Errors

  - malformed JSON or a validation failure: 400 with the reason as message
  - poll ID that is not a UUID, or no such poll: 404
  - store failure: 500 "Database error", logged

# Concurrency

Read-modify-write operations (responses, roster, cell edits) hold a per-poll
lock inside the process, so concurrent submissions to one server are never
lost. Across processes each field follows last-writer-wins.
*/
package handlers
