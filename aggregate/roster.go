// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import "strings"

// MergeNames appends proposed entries to existing, skipping blanks and
// anything that matches an existing entry case-insensitively. Existing
// entries are never reordered or removed. Returns the merged list and the
// entries actually added.
func MergeNames(existing, proposed []string) (merged, added []string) {
	seen := make(map[string]bool, len(existing)+len(proposed))
	for _, e := range existing {
		seen[strings.ToLower(e)] = true
	}

	added = []string{}
	for _, p := range proposed {
		p = strings.TrimSpace(p)
		if p == "" || seen[strings.ToLower(p)] {
			continue
		}
		seen[strings.ToLower(p)] = true
		added = append(added, p)
	}

	merged = make([]string, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	merged = append(merged, added...)
	return merged, added
}

// Roster is the outcome of MergeRoster
type Roster struct {
	Participants      []string
	Instruments       []string
	AddedParticipants []string
	AddedInstruments  []string
}

// MergeRoster merges new participants and instruments into the current lists
func MergeRoster(participants, instruments, newParticipants, newInstruments []string) Roster {
	var r Roster
	r.Participants, r.AddedParticipants = MergeNames(participants, newParticipants)
	r.Instruments, r.AddedInstruments = MergeNames(instruments, newInstruments)
	return r
}
