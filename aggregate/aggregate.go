// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"strings"
	"time"

	"github.com/danielhkuo/band-planner/models"
)

// Aggregator validates submissions and merges them into a poll's responses
type Aggregator struct {
	// RequireUpfrontInstrument rejects yes/ifneeded answers from participants
	// who declared no general instrument
	RequireUpfrontInstrument bool

	now func() time.Time
}

func NewAggregator(requireUpfrontInstrument bool) *Aggregator {
	return &Aggregator{RequireUpfrontInstrument: requireUpfrontInstrument, now: time.Now}
}

// MergeResult is the outcome of a successful Merge
type MergeResult struct {
	Responses []models.Response // full new response list, ready to persist
	Response  models.Response   // the stored response
	Replaced  bool              // an earlier response by the same participant was overwritten
}

// Validate checks a submission against the poll. Rules run in order and the
// first failure is returned.
func (a *Aggregator) Validate(poll *models.Poll, sub models.Submission) error {
	if strings.TrimSpace(sub.Name) == "" {
		return models.Invalid("name required")
	}

	if sub.Answers == nil {
		return models.Invalid("answers required")
	}
	for _, date := range poll.Dates {
		if !sub.Answers[date].Valid() {
			return models.Invalid("invalid or missing answer for date %s", date)
		}
	}

	if a.RequireUpfrontInstrument && len(sub.UpfrontInstruments) == 0 {
		for _, date := range poll.Dates {
			if sub.Answers[date].Available() {
				return models.Invalid("select at least one instrument before answering yes or ifneeded")
			}
		}
	}

	return nil
}

// Merge validates sub and places it in the poll's response list: replacing the
// entry with the same name (case-insensitive) at its position, or appending.
// poll is not modified.
func (a *Aggregator) Merge(poll *models.Poll, sub models.Submission) (MergeResult, error) {
	if err := a.Validate(poll, sub); err != nil {
		return MergeResult{}, err
	}

	resp := models.Response{
		Name:               strings.TrimSpace(sub.Name),
		SubmittedAt:        a.now().UTC(),
		Answers:            sub.Answers,
		Instruments:        sub.Instruments,
		UpfrontInstruments: sub.UpfrontInstruments,
	}
	if resp.Instruments == nil {
		resp.Instruments = map[string][]string{}
	}
	if resp.UpfrontInstruments == nil {
		resp.UpfrontInstruments = []string{}
	}

	responses := make([]models.Response, len(poll.Responses), len(poll.Responses)+1)
	copy(responses, poll.Responses)

	idx := FindResponse(responses, resp.Name)
	if idx >= 0 {
		responses[idx] = resp
	} else {
		responses = append(responses, resp)
	}

	return MergeResult{Responses: responses, Response: resp, Replaced: idx >= 0}, nil
}

// FindResponse returns the index of the response named name (case-insensitive), or -1
func FindResponse(responses []models.Response, name string) int {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, r := range responses {
		if strings.ToLower(r.Name) == key {
			return i
		}
	}
	return -1
}
