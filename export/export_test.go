// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"testing"

	"github.com/danielhkuo/band-planner/models"
)

func exportPoll() *models.Poll {
	return &models.Poll{
		Title:       "Jam Night #3",
		Dates:       []string{"2024-01-07", "2024-01-14"},
		Instruments: []string{"piano", "drums"},
		Responses: []models.Response{
			{
				Name:        "Alice",
				Answers:     map[string]models.Answer{"2024-01-07": "yes", "2024-01-14": "no"},
				Instruments: map[string][]string{"2024-01-07": {"piano"}, "2024-01-14": {"piano"}},
			},
			{
				Name:        "Bob",
				Answers:     map[string]models.Answer{"2024-01-07": "ifneeded", "2024-01-14": "yes"},
				Instruments: map[string][]string{"2024-01-07": {"drums"}, "2024-01-14": {"piano", "drums"}},
			},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(exportPoll())

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (Alice unavailable on second date), got %d", len(rows))
	}
	if rows[0].Participant != "Alice" || !rows[0].Instruments[0] || rows[0].Instruments[1] {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Availability != models.AnswerIfNeeded {
		t.Errorf("expected ifneeded for Bob, got %s", rows[1].Availability)
	}
	if rows[2].Date != "2024-01-14" || rows[2].Participant != "Bob" {
		t.Errorf("unexpected last row %+v", rows[2])
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTSV(&buf, exportPoll()); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}

	expected := "Date\tParticipant\tAvailability\tpiano\tdrums\n" +
		"2024-01-07\tAlice\tyes\t✓\t\n" +
		"2024-01-07\tBob\tifneeded\t\t✓\n" +
		"\n" +
		"2024-01-14\tBob\tyes\t✓\t✓\n" +
		"\n"

	if buf.String() != expected {
		t.Errorf("unexpected TSV:\n%q\nexpected:\n%q", buf.String(), expected)
	}
}

func TestWriteTSVNoResponses(t *testing.T) {
	poll := exportPoll()
	poll.Responses = nil

	var buf bytes.Buffer
	if err := WriteTSV(&buf, poll); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}
	if buf.String() != "Date\tParticipant\tAvailability\tpiano\tdrums\n" {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(exportPoll()); got != "Jam_Night__3_export.tsv" {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestSummary(t *testing.T) {
	s := Summary(exportPoll())

	if s.ResponseCount != 2 {
		t.Errorf("expected 2 responses, got %d", s.ResponseCount)
	}
	want := []models.DateSummary{
		{Date: "2024-01-07", Yes: 1, IfNeeded: 1},
		{Date: "2024-01-14", Yes: 1, IfNeeded: 0},
	}
	for i, w := range want {
		if s.Dates[i] != w {
			t.Errorf("date %d: expected %+v, got %+v", i, w, s.Dates[i])
		}
	}
}
