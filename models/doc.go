// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase. Poll and its nested types also carry bson
tags for the MongoDB store.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, duration, dates, participants, instruments
  - Submission: name, answers, instruments, upfrontInstruments
  - RosterRequest: newParticipants, newInstruments
  - SavePlanningRequest: planning
  - CellEditRequest: date, instrument, assignment (null clears)

# Response Types

Types for JSON responses:

  - CreatePollResponse: id, url, deletionToken
  - SubmitResponseResponse: message, updated, poll
  - RosterResponse: added and merged lists
  - PlanningResponse: planning
  - CandidatesResponse: date, instrument, candidates
  - SummaryResponse: responseCount, per-date yes and ifneeded counts
  - MessageResponse, ErrorResponse

# Domain Types

  - Poll: dates, roster, responses and the saved planning. DeletionToken is
    never serialized to JSON.
  - Response: one participant's answers and per-date instruments
  - Planning: date -> instrument -> Assignment; a missing key is an empty cell
  - Assignment: name, isGuest, certain (null for guests)
  - Candidate: tier (yes or ifneeded) and name

# Answers

	AnswerYes      = "yes"
	AnswerIfNeeded = "ifneeded"
	AnswerNo       = "no"

# Errors

ValidationError carries a client-facing reason and maps to HTTP 400:

	return models.Invalid("unknown date %s", date)
*/
package models
