// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Answer is a participant's availability for one date
type Answer string

const (
	AnswerYes      Answer = "yes"
	AnswerIfNeeded Answer = "ifneeded"
	AnswerNo       Answer = "no"
)

// Valid reports whether a is one of the three accepted answers
func (a Answer) Valid() bool {
	switch a {
	case AnswerYes, AnswerIfNeeded, AnswerNo:
		return true
	}
	return false
}

// Available reports whether the participant can be scheduled (yes or ifneeded)
func (a Answer) Available() bool {
	return a == AnswerYes || a == AnswerIfNeeded
}

// DateLayout is the ISO calendar date format used for poll dates
const DateLayout = "2006-01-02"

// Request types

type CreatePollRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     string   `json:"duration"`
	Dates        []string `json:"dates"`
	Participants []string `json:"participants"`
	Instruments  []string `json:"instruments"`
}

// Submission is what a participant posts from the availability form
type Submission struct {
	Name               string              `json:"name"`
	Answers            map[string]Answer   `json:"answers"`
	Instruments        map[string][]string `json:"instruments"`
	UpfrontInstruments []string            `json:"upfrontInstruments"`
}

type RosterRequest struct {
	NewParticipants []string `json:"newParticipants"`
	NewInstruments  []string `json:"newInstruments"`
}

type SavePlanningRequest struct {
	Planning Planning `json:"planning"`
}

// CellEditRequest sets (Assignment != nil) or clears one planning cell
type CellEditRequest struct {
	Date       string      `json:"date"`
	Instrument string      `json:"instrument"`
	Assignment *Assignment `json:"assignment"`
}

// Response types

type CreatePollResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	DeletionToken string `json:"deletionToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SubmitResponseResponse struct {
	Message string `json:"message"`
	Updated bool   `json:"updated"`
	Poll    Poll   `json:"poll"`
}

type RosterResponse struct {
	AddedParticipants []string `json:"addedParticipants"`
	AddedInstruments  []string `json:"addedInstruments"`
	Participants      []string `json:"participants"`
	Instruments       []string `json:"instruments"`
}

type PlanningResponse struct {
	Planning Planning `json:"planning"`
}

type CandidatesResponse struct {
	Date       string      `json:"date"`
	Instrument string      `json:"instrument"`
	Candidates []Candidate `json:"candidates"`
}

type DateSummary struct {
	Date     string `json:"date"`
	Yes      int    `json:"yes"`
	IfNeeded int    `json:"ifneeded"`
}

type SummaryResponse struct {
	ResponseCount int           `json:"responseCount"`
	Dates         []DateSummary `json:"dates"`
}

// Domain types

type Poll struct {
	ID            string     `json:"id" bson:"id"`
	Title         string     `json:"title" bson:"title"`
	Description   string     `json:"description" bson:"description"`
	Duration      string     `json:"duration" bson:"duration"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	Dates         []string   `json:"dates" bson:"dates"`
	Participants  []string   `json:"participants" bson:"participants"`
	Instruments   []string   `json:"instruments" bson:"instruments"`
	Responses     []Response `json:"responses" bson:"responses"`
	Planning      Planning   `json:"planning,omitempty" bson:"planning,omitempty"`
	DeletionToken string     `json:"-" bson:"deletionToken"` // Only returned once, at creation
}

// HasDate reports whether date is one of the poll's sessions
func (p *Poll) HasDate(date string) bool {
	for _, d := range p.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// HasInstrument reports whether instrument is one of the poll's instruments (exact match)
func (p *Poll) HasInstrument(instrument string) bool {
	for _, i := range p.Instruments {
		if i == instrument {
			return true
		}
	}
	return false
}

type Response struct {
	Name               string              `json:"name" bson:"name"`
	SubmittedAt        time.Time           `json:"submittedAt" bson:"submittedAt"`
	Answers            map[string]Answer   `json:"answers" bson:"answers"`
	Instruments        map[string][]string `json:"instruments" bson:"instruments"`
	UpfrontInstruments []string            `json:"upfrontInstruments" bson:"upfrontInstruments"`
}

// Plays reports whether the response picked instrument for date
func (r *Response) Plays(date, instrument string) bool {
	for _, i := range r.Instruments[date] {
		if i == instrument {
			return true
		}
	}
	return false
}

// Eligible reports whether r can fill the (date, instrument) slot
func (r *Response) Eligible(date, instrument string) bool {
	return r.Answers[date].Available() && r.Plays(date, instrument)
}

// Assignment is one filled planning cell. Certain is nil for guests.
type Assignment struct {
	Name    string `json:"name" bson:"name"`
	IsGuest bool   `json:"isGuest" bson:"isGuest"`
	Certain *bool  `json:"certain" bson:"certain"`
}

// Planning maps date -> instrument -> assignment. A missing key is an empty cell.
type Planning map[string]map[string]Assignment

// Get returns the assignment for a cell, if any
func (p Planning) Get(date, instrument string) (Assignment, bool) {
	a, ok := p[date][instrument]
	return a, ok
}

// Tier ranks the candidates for a slot
type Tier string

const (
	TierYes      Tier = "yes"
	TierIfNeeded Tier = "ifneeded"
)

// Candidate is a selectable participant for a planning cell
type Candidate struct {
	Tier Tier   `json:"tier"`
	Name string `json:"name"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
