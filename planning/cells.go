// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"sort"
	"strings"

	"github.com/danielhkuo/band-planner/models"
)

// Candidates lists who can fill a cell: yes answers first, then ifneeded,
// each group in response order. Booking on other instruments is ignored.
func Candidates(poll *models.Poll, date, instrument string) []models.Candidate {
	var yes, ifNeeded []models.Candidate
	for _, r := range poll.Responses {
		if !r.Plays(date, instrument) {
			continue
		}
		switch r.Answers[date] {
		case models.AnswerYes:
			yes = append(yes, models.Candidate{Tier: models.TierYes, Name: r.Name})
		case models.AnswerIfNeeded:
			ifNeeded = append(ifNeeded, models.Candidate{Tier: models.TierIfNeeded, Name: r.Name})
		}
	}
	return append(yes, ifNeeded...)
}

// SetCell applies a manual edit to one cell and returns the updated planning.
// A nil assignment clears the cell. Guests are stored as given with Certain
// nil; a named participant must be a candidate for the cell and Certain is
// taken from their tier. Other cells, including the rest of the date's row,
// are left untouched and not re-checked for double booking.
func SetCell(poll *models.Poll, current models.Planning, date, instrument string, a *models.Assignment) (models.Planning, error) {
	if !poll.HasDate(date) {
		return nil, models.Invalid("unknown date %s", date)
	}
	if !poll.HasInstrument(instrument) {
		return nil, models.Invalid("unknown instrument %s", instrument)
	}

	next := Clone(current)

	if a == nil {
		if row, ok := next[date]; ok {
			delete(row, instrument)
		}
		return next, nil
	}

	name := strings.TrimSpace(a.Name)
	if name == "" {
		return nil, models.Invalid("assignment name required")
	}

	var cell models.Assignment
	if a.IsGuest {
		cell = models.Assignment{Name: name, IsGuest: true}
	} else {
		c, ok := findCandidate(Candidates(poll, date, instrument), name)
		if !ok {
			return nil, models.Invalid("%s is not available for %s on %s", name, instrument, date)
		}
		certain := c.Tier == models.TierYes
		cell = models.Assignment{Name: c.Name, Certain: &certain}
	}

	if next[date] == nil {
		next[date] = make(map[string]models.Assignment)
	}
	next[date][instrument] = cell
	return next, nil
}

func findCandidate(candidates []models.Candidate, name string) (models.Candidate, bool) {
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.Candidate{}, false
}

// Validate checks a planning submitted for saving: only poll dates and
// instruments, and a name on every assignment. Guests get Certain cleared.
func Validate(poll *models.Poll, p models.Planning) (models.Planning, error) {
	out := make(models.Planning, len(p))
	for _, date := range poll.Dates {
		row, ok := p[date]
		if !ok {
			continue
		}
		instruments := make([]string, 0, len(row))
		for instr := range row {
			instruments = append(instruments, instr)
		}
		sort.Strings(instruments)

		out[date] = make(map[string]models.Assignment, len(row))
		for _, instr := range instruments {
			a := row[instr]
			if !poll.HasInstrument(instr) {
				return nil, models.Invalid("unknown instrument %s", instr)
			}
			a.Name = strings.TrimSpace(a.Name)
			if a.Name == "" {
				return nil, models.Invalid("assignment name required for %s on %s", instr, date)
			}
			if a.IsGuest {
				a.Certain = nil
			} else if a.Certain == nil {
				return nil, models.Invalid("certain required for %s on %s", instr, date)
			}
			out[date][instr] = a
		}
	}
	if len(out) != len(p) {
		dates := make([]string, 0, len(p))
		for date := range p {
			if !poll.HasDate(date) {
				dates = append(dates, date)
			}
		}
		sort.Strings(dates)
		return nil, models.Invalid("unknown date %s", dates[0])
	}
	return out, nil
}

// Clone deep-copies a planning
func Clone(p models.Planning) models.Planning {
	out := make(models.Planning, len(p))
	for date, row := range p {
		r := make(map[string]models.Assignment, len(row))
		for instr, a := range row {
			if a.Certain != nil {
				c := *a.Certain
				a.Certain = &c
			}
			r[instr] = a
		}
		out[date] = r
	}
	return out
}
