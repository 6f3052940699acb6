// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"errors"
	"testing"

	"github.com/danielhkuo/band-planner/models"
)

func cellPoll() *models.Poll {
	dates := []string{"2024-05-05", "2024-05-12"}
	return &models.Poll{
		Dates:       dates,
		Instruments: []string{"piano", "drums"},
		Responses: []models.Response{
			respond("Mia", everyDate(dates, models.AnswerIfNeeded), sameInstruments(dates, "piano")),
			respond("Ned", everyDate(dates, models.AnswerYes), sameInstruments(dates, "piano", "drums")),
			respond("Oz", everyDate(dates, models.AnswerNo), sameInstruments(dates, "piano")),
		},
	}
}

func TestCandidates(t *testing.T) {
	poll := cellPoll()

	got := Candidates(poll, "2024-05-05", "piano")
	want := []models.Candidate{
		{Tier: models.TierYes, Name: "Ned"},
		{Tier: models.TierIfNeeded, Name: "Mia"},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	if c := Candidates(poll, "2024-05-05", "bass"); len(c) != 0 {
		t.Errorf("expected no candidates for unknown instrument, got %v", c)
	}
}

func TestSetCellGuestOverwritesAutomatic(t *testing.T) {
	poll := cellPoll()
	auto := NewComposer(nil).Compose(poll)

	if a, _ := auto.Get("2024-05-05", "piano"); a.Name != "Ned" {
		t.Fatalf("setup: expected Ned on piano, got %s", a.Name)
	}

	// Guest named like a booked participant: no eligibility or double-booking check
	next, err := SetCell(poll, auto, "2024-05-05", "piano", &models.Assignment{Name: "  Ned  ", IsGuest: true})
	if err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}

	a, ok := next.Get("2024-05-05", "piano")
	if !ok || a.Name != "Ned" || !a.IsGuest || a.Certain != nil {
		t.Errorf("expected guest Ned with nil certain, got %+v", a)
	}

	// Original planning untouched
	if a, _ := auto.Get("2024-05-05", "piano"); a.IsGuest {
		t.Error("SetCell must not modify its input planning")
	}
}

func TestSetCellNamedCandidate(t *testing.T) {
	poll := cellPoll()

	next, err := SetCell(poll, nil, "2024-05-12", "piano", &models.Assignment{Name: "Mia", Certain: boolPtr(true)})
	if err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}

	a, _ := next.Get("2024-05-12", "piano")
	if a.Name != "Mia" || a.IsGuest {
		t.Errorf("unexpected assignment %+v", a)
	}
	if a.Certain == nil || *a.Certain {
		t.Error("certain must follow the ifneeded tier, not the request")
	}
}

func TestSetCellNameIgnoresCase(t *testing.T) {
	poll := cellPoll()

	next, err := SetCell(poll, nil, "2024-05-05", "drums", &models.Assignment{Name: "  ned "})
	if err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}

	a, _ := next.Get("2024-05-05", "drums")
	if a.Name != "Ned" {
		t.Errorf("expected stored name Ned, got %q", a.Name)
	}
	if a.Certain == nil || !*a.Certain {
		t.Error("certain must follow the yes tier")
	}
}

func TestSetCellClear(t *testing.T) {
	poll := cellPoll()
	auto := NewComposer(nil).Compose(poll)

	next, err := SetCell(poll, auto, "2024-05-05", "piano", nil)
	if err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}
	if _, ok := next.Get("2024-05-05", "piano"); ok {
		t.Error("expected cell cleared")
	}
	if _, ok := next.Get("2024-05-12", "piano"); !ok {
		t.Error("other cells must be kept")
	}
}

func TestSetCellRejects(t *testing.T) {
	poll := cellPoll()

	tests := []struct {
		name       string
		date       string
		instrument string
		assignment *models.Assignment
	}{
		{"unknown date", "2024-06-01", "piano", nil},
		{"unknown instrument", "2024-05-05", "bass", nil},
		{"empty name", "2024-05-05", "piano", &models.Assignment{Name: "   ", IsGuest: true}},
		{"unavailable participant", "2024-05-05", "piano", &models.Assignment{Name: "Oz"}},
		{"wrong instrument", "2024-05-05", "drums", &models.Assignment{Name: "Mia"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SetCell(poll, nil, tt.date, tt.instrument, tt.assignment)
			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	poll := cellPoll()

	ok := models.Planning{
		"2024-05-05": {
			"piano": {Name: "Ned", Certain: boolPtr(true)},
			"drums": {Name: "Guest Star", IsGuest: true, Certain: boolPtr(true)},
		},
	}
	out, err := Validate(poll, ok)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if g, _ := out.Get("2024-05-05", "drums"); g.Certain != nil {
		t.Error("guest certain should be cleared")
	}

	bad := []models.Planning{
		{"2030-01-01": {"piano": {Name: "Ned", Certain: boolPtr(true)}}},
		{"2024-05-05": {"tuba": {Name: "Ned", Certain: boolPtr(true)}}},
		{"2024-05-05": {"piano": {Name: "", Certain: boolPtr(true)}}},
		{"2024-05-05": {"piano": {Name: "Ned"}}},
	}
	for i, p := range bad {
		if _, err := Validate(poll, p); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestValidateReportsFirstUnknownInOrder(t *testing.T) {
	poll := cellPoll()

	p := models.Planning{
		"2024-05-05": {
			"zither": {Name: "Ned", Certain: boolPtr(true)},
			"banjo":  {Name: "Ned", Certain: boolPtr(true)},
			"tuba":   {Name: "Ned", Certain: boolPtr(true)},
		},
		"2031-01-01": {"piano": {Name: "Ned", Certain: boolPtr(true)}},
		"2030-01-01": {"piano": {Name: "Ned", Certain: boolPtr(true)}},
	}

	// Repeat to catch map iteration order leaking into the message
	for i := 0; i < 20; i++ {
		_, err := Validate(poll, p)
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if ve.Reason != "unknown instrument banjo" {
			t.Fatalf("expected unknown instrument banjo, got %q", ve.Reason)
		}
	}

	delete(p, "2024-05-05")
	for i := 0; i < 20; i++ {
		_, err := Validate(poll, p)
		var ve *models.ValidationError
		if !errors.As(err, &ve) || ve.Reason != "unknown date 2030-01-01" {
			t.Fatalf("expected unknown date 2030-01-01, got %v", err)
		}
	}
}

func boolPtr(b bool) *bool { return &b }
