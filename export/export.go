// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export produces read-only views of poll responses for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"

	"github.com/danielhkuo/band-planner/models"
)

// Mark is written in an instrument column when the participant picked it for the date
const Mark = "✓"

// Row is one available participant on one date. Instruments has one entry per
// poll instrument, in poll order, true when picked for that date.
type Row struct {
	Date         string
	Participant  string
	Availability models.Answer
	Instruments  []bool
}

// Rows lists, date by date, every response answering yes or ifneeded.
// Responses keep submission order within a date.
func Rows(poll *models.Poll) []Row {
	var rows []Row
	for _, date := range poll.Dates {
		for _, r := range poll.Responses {
			answer := r.Answers[date]
			if !answer.Available() {
				continue
			}
			row := Row{
				Date:         date,
				Participant:  r.Name,
				Availability: answer,
				Instruments:  make([]bool, len(poll.Instruments)),
			}
			for i, instr := range poll.Instruments {
				row.Instruments[i] = r.Plays(date, instr)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteTSV writes Rows as tab-separated values with a header, leaving an
// empty line after each date.
func WriteTSV(w io.Writer, poll *models.Poll) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	header := append([]string{"Date", "Participant", "Availability"}, poll.Instruments...)
	if err := tw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rows := Rows(poll)
	for i, row := range rows {
		record := make([]string, 0, 3+len(row.Instruments))
		record = append(record, row.Date, row.Participant, string(row.Availability))
		for _, picked := range row.Instruments {
			if picked {
				record = append(record, Mark)
			} else {
				record = append(record, "")
			}
		}
		if err := tw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}

		if i == len(rows)-1 || rows[i+1].Date != row.Date {
			if err := tw.Write(nil); err != nil {
				return fmt.Errorf("failed to write separator: %w", err)
			}
		}
	}

	tw.Flush()
	return tw.Error()
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9]`)

// Filename returns the download name for a poll's export
func Filename(poll *models.Poll) string {
	return unsafeFilename.ReplaceAllString(poll.Title, "_") + "_export.tsv"
}

// Summary counts yes and ifneeded answers per date
func Summary(poll *models.Poll) models.SummaryResponse {
	s := models.SummaryResponse{
		ResponseCount: len(poll.Responses),
		Dates:         make([]models.DateSummary, 0, len(poll.Dates)),
	}
	for _, date := range poll.Dates {
		ds := models.DateSummary{Date: date}
		for _, r := range poll.Responses {
			switch r.Answers[date] {
			case models.AnswerYes:
				ds.Yes++
			case models.AnswerIfNeeded:
				ds.IfNeeded++
			}
		}
		s.Dates = append(s.Dates, ds)
	}
	return s
}
