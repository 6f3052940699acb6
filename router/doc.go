// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the band planner API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg, notifier)

# Endpoints

Health:

	GET /health - 200 "OK" when the store answers a ping, 503 otherwise

Polls:

	POST   /polls             - Create poll (returns deletionToken once)
	GET    /polls/{id}        - Poll with responses and saved planning
	DELETE /polls/{id}        - Delete poll (X-Admin-Key)
	PATCH  /polls/{id}/roster - Add participants and instruments (X-Admin-Key)

Responses (public):

	POST /polls/{id}/responses - Submit or replace a response by name

Planning (admin, requires X-Admin-Key):

	POST  /polls/{id}/planning/compose    - Run the composition engine, not saved
	PUT   /polls/{id}/planning            - Save a full planning
	PATCH /polls/{id}/planning/cell       - Set or clear one cell
	GET   /polls/{id}/planning/candidates - Candidates for ?date=&instrument=

Read-only views (public):

	GET /polls/{id}/summary - Yes and ifneeded counts per date
	GET /polls/{id}/export  - TSV download

Poll IDs are UUIDs; any other {id} is answered with 404.
*/
package router
