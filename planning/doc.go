// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package planning builds the "who plays what, when" table for a poll.

# Automatic Composition

	composer := planning.NewComposer([]string{"piano", "guitare"})
	plan := composer.Compose(&poll)

Compose is pure: it reads dates, instruments and responses and returns a new
Planning. A slot with no available player is simply absent.

A participant is eligible for (date, instrument) when they answered yes or
ifneeded for the date and picked the instrument for that date.

Order of work:

 1. Priority instruments (Composer.Priority order, case-insensitive match)
 2. Remaining instruments, fewest eligible participants first
 3. Dates in poll order

For each slot, participants already booked that date are skipped, yes beats
ifneeded, and within a tier candidates are ranked by:

  - remaining eligible dates for the instrument from this date on (fewest first)
  - assignments already made on the instrument (fewest first)
  - name (ascending)

# Manual Edits

	plan, err := planning.SetCell(&poll, poll.Planning, date, instrument, &models.Assignment{Name: "Zoe", IsGuest: true})

Guests bypass every check. Named participants must be candidates for the cell
(see Candidates). A nil assignment clears the cell.
*/
package planning
