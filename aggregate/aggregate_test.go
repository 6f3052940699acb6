// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/danielhkuo/band-planner/models"
)

func testPoll() *models.Poll {
	return &models.Poll{
		Dates:       []string{"2024-01-07", "2024-01-14"},
		Instruments: []string{"piano", "drums"},
	}
}

func fixedAggregator(require bool, at time.Time) *Aggregator {
	a := NewAggregator(require)
	a.now = func() time.Time { return at }
	return a
}

func TestValidate(t *testing.T) {
	poll := testPoll()
	bothYes := map[string]models.Answer{"2024-01-07": "yes", "2024-01-14": "yes"}

	tests := []struct {
		name    string
		require bool
		sub     models.Submission
		reason  string
	}{
		{
			name:   "blank name",
			sub:    models.Submission{Name: "   ", Answers: bothYes},
			reason: "name required",
		},
		{
			name:   "name checked before answers",
			sub:    models.Submission{Name: ""},
			reason: "name required",
		},
		{
			name:   "nil answers",
			sub:    models.Submission{Name: "Alice"},
			reason: "answers required",
		},
		{
			name:   "missing second date",
			sub:    models.Submission{Name: "Alice", Answers: map[string]models.Answer{"2024-01-07": "no"}},
			reason: "invalid or missing answer for date 2024-01-14",
		},
		{
			name: "first offending date in poll order",
			sub: models.Submission{Name: "Alice", Answers: map[string]models.Answer{
				"2024-01-07": "maybe", "2024-01-14": "",
			}},
			reason: "invalid or missing answer for date 2024-01-07",
		},
		{
			name:    "upfront instrument required",
			require: true,
			sub: models.Submission{Name: "Alice", Answers: map[string]models.Answer{
				"2024-01-07": "no", "2024-01-14": "ifneeded",
			}},
			reason: "select at least one instrument before answering yes or ifneeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAggregator(tt.require).Validate(poll, tt.sub)
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Reason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, ve.Reason)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	poll := testPoll()

	allNo := models.Submission{Name: "Bob", Answers: map[string]models.Answer{"2024-01-07": "no", "2024-01-14": "no"}}
	if err := NewAggregator(true).Validate(poll, allNo); err != nil {
		t.Errorf("all-no answers need no upfront instrument: %v", err)
	}

	extra := models.Submission{Name: "Bob", Answers: map[string]models.Answer{
		"2024-01-07": "yes", "2024-01-14": "ifneeded", "2030-01-01": "whatever",
	}}
	if err := NewAggregator(false).Validate(poll, extra); err != nil {
		t.Errorf("answers for unknown dates are ignored: %v", err)
	}
}

func TestMergeAppendsAndReplacesInPlace(t *testing.T) {
	poll := testPoll()
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	first := models.Submission{
		Name:        " Alice ",
		Answers:     map[string]models.Answer{"2024-01-07": "yes", "2024-01-14": "no"},
		Instruments: map[string][]string{"2024-01-07": {"piano"}},
	}
	res, err := fixedAggregator(false, t1).Merge(poll, first)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if res.Replaced {
		t.Error("first submission should not replace")
	}
	if res.Response.Name != "Alice" {
		t.Errorf("expected trimmed name, got %q", res.Response.Name)
	}
	if res.Response.UpfrontInstruments == nil {
		t.Error("upfront instruments should default to empty, not nil")
	}
	poll.Responses = res.Responses

	other := models.Submission{Name: "Bob", Answers: map[string]models.Answer{"2024-01-07": "no", "2024-01-14": "no"}}
	res, err = fixedAggregator(false, t1).Merge(poll, other)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	poll.Responses = res.Responses

	second := models.Submission{
		Name:               "ALICE",
		Answers:            map[string]models.Answer{"2024-01-07": "ifneeded", "2024-01-14": "yes"},
		UpfrontInstruments: []string{"drums"},
	}
	res, err = fixedAggregator(false, t2).Merge(poll, second)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if !res.Replaced {
		t.Error("expected replacement for case-insensitive name match")
	}
	if len(res.Responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(res.Responses))
	}
	got := res.Responses[0]
	if got.Name != "ALICE" {
		t.Errorf("replacement should keep position 0, got %q there", got.Name)
	}
	if got.Answers["2024-01-07"] != models.AnswerIfNeeded {
		t.Error("second submission's answers should win")
	}
	if len(got.Instruments) != 0 {
		t.Error("fields are overwritten wholesale, old instruments must be gone")
	}
	if !got.SubmittedAt.Equal(t2) {
		t.Errorf("submittedAt should update to %v, got %v", t2, got.SubmittedAt)
	}
	if res.Responses[1].Name != "Bob" {
		t.Error("other responses keep their order")
	}

	// The poll passed in is not modified
	if poll.Responses[0].Name != "Alice" {
		t.Error("Merge must not modify the poll's response slice")
	}
}

func TestMergeRejectsWithoutChange(t *testing.T) {
	poll := testPoll()
	poll.Responses = []models.Response{{Name: "Alice"}}

	res, err := NewAggregator(false).Merge(poll, models.Submission{Name: "alice"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if res.Responses != nil {
		t.Error("no partial result on failure")
	}
	if !reflect.DeepEqual(poll.Responses, []models.Response{{Name: "Alice"}}) {
		t.Error("poll changed on failed merge")
	}
}

func TestFindResponse(t *testing.T) {
	responses := []models.Response{{Name: "Alice"}, {Name: "Bob"}}

	if i := FindResponse(responses, " bob "); i != 1 {
		t.Errorf("expected 1, got %d", i)
	}
	if i := FindResponse(responses, "Carol"); i != -1 {
		t.Errorf("expected -1, got %d", i)
	}
}
