// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the band planner API server.

A band leader creates a poll listing rehearsal dates, participants and
instruments. Musicians answer yes, ifneeded or no for each date and say which
instruments they can play. The leader then composes a line-up: one player per
instrument per date, never double booked, preferring yes over ifneeded and
spreading the load toward the people with the fewest remaining chances.

# Starting the Server

	DATABASE_URL=band.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string, file path for SQLite

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or mongo (default: sqlite)
  - REQUIRE_UPFRONT_INSTRUMENT: reject available answers without an instrument
  - PRIORITY_INSTRUMENTS: instruments composed first (default: piano,guitare)
  - RESEND_API_KEY, NOTIFY_EMAIL, NOTIFY_FROM, PUBLIC_URL: email notifications

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, responses, planning, export)
  - router: Route definitions using Go 1.22+ routing
  - middleware: chi request stack, CORS, logging, JSON helpers
  - planning: composition engine and manual cell edits
  - aggregate: response merge and roster merge
  - export: TSV export and per-date summary
  - notify: email notifications
  - store: persistence port, with sqlstore and mongostore backends
  - models: Request/response and domain types
  - auth: Admin key generation and validation
  - db: SQL schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
