// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aggregate merges participant input into a poll.

# Responses

	agg := aggregate.NewAggregator(cfg.RequireUpfrontInstrument)
	res, err := agg.Merge(&poll, submission)

Validation stops at the first failing rule:

 1. name is non-blank
 2. answers cover every poll date with yes, ifneeded or no
 3. (RequireUpfrontInstrument only) an upfront instrument is declared when
    any answer is yes or ifneeded

One response per participant: a name matching an existing response
case-insensitively replaces it at the same position, otherwise the response
is appended. All fields are overwritten.

# Roster

	roster := aggregate.MergeRoster(poll.Participants, poll.Instruments, req.NewParticipants, req.NewInstruments)

Append-only and case-insensitively de-duplicated.
*/
package aggregate
