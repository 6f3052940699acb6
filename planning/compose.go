// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package planning

import (
	"sort"
	"strings"

	"github.com/danielhkuo/band-planner/models"
)

// DefaultPriority lists the instruments scheduled before all others, in order
var DefaultPriority = []string{"piano", "guitare"}

// Composer builds an automatic planning for a poll
type Composer struct {
	// Priority instruments, matched case-insensitively against the poll's instruments
	Priority []string
}

// NewComposer returns a Composer using priority, or DefaultPriority when empty
func NewComposer(priority []string) Composer {
	if len(priority) == 0 {
		priority = DefaultPriority
	}
	return Composer{Priority: priority}
}

// InstrumentOrder returns the priority instruments present in the poll (in
// priority-list order) followed by the remaining instruments in poll order.
// This is the column order used for display.
func (c Composer) InstrumentOrder(poll *models.Poll) []string {
	priority, rest := c.split(poll)
	return append(priority, rest...)
}

// split separates the poll's instruments into priority and other instruments
func (c Composer) split(poll *models.Poll) (priority, rest []string) {
	for _, p := range c.Priority {
		for _, instr := range poll.Instruments {
			if strings.EqualFold(instr, p) {
				priority = append(priority, instr)
				break
			}
		}
	}

	for _, instr := range poll.Instruments {
		if !c.isPriority(instr) {
			rest = append(rest, instr)
		}
	}
	return priority, rest
}

func (c Composer) isPriority(instrument string) bool {
	for _, p := range c.Priority {
		if strings.EqualFold(instrument, p) {
			return true
		}
	}
	return false
}

// Compose assigns at most one participant to every (date, instrument) slot.
//
// Instruments are processed priority first, then by ascending number of
// eligible participants. Dates are processed in poll order. Within a slot,
// yes candidates always beat ifneeded candidates; inside a tier the candidate
// with the fewest remaining eligible dates for the instrument wins, then the
// one with fewest assignments on it so far, then the lowest name.
//
// The poll is not modified. Identical input gives identical output.
func (c Composer) Compose(poll *models.Poll) models.Planning {
	dates := poll.Dates
	responses := poll.Responses

	// remaining[r][instrument][i] = eligible dates for responses[r] in dates[i:]
	remaining := make([]map[string][]int, len(responses))
	for r := range responses {
		remaining[r] = make(map[string][]int, len(poll.Instruments))
		for _, instr := range poll.Instruments {
			counts := make([]int, len(dates)+1)
			for i := len(dates) - 1; i >= 0; i-- {
				counts[i] = counts[i+1]
				if responses[r].Eligible(dates[i], instr) {
					counts[i]++
				}
			}
			remaining[r][instr] = counts[:len(dates)]
		}
	}

	assignedCount := make([]map[string]int, len(responses))
	for r := range assignedCount {
		assignedCount[r] = make(map[string]int)
	}

	result := make(models.Planning, len(dates))
	booked := make(map[string]map[int]bool, len(dates))
	for _, d := range dates {
		result[d] = make(map[string]models.Assignment)
		booked[d] = make(map[int]bool)
	}

	done := make(map[string]bool, len(poll.Instruments))
	for _, instr := range c.processingOrder(poll) {
		if done[instr] {
			continue
		}
		done[instr] = true

		for i, date := range dates {
			var yes, ifNeeded []int
			for r := range responses {
				if booked[date][r] || !responses[r].Plays(date, instr) {
					continue
				}
				switch responses[r].Answers[date] {
				case models.AnswerYes:
					yes = append(yes, r)
				case models.AnswerIfNeeded:
					ifNeeded = append(ifNeeded, r)
				}
			}
			if len(yes) == 0 && len(ifNeeded) == 0 {
				continue
			}

			byDeadline := func(tier []int) func(a, b int) bool {
				return func(a, b int) bool {
					ra, rb := tier[a], tier[b]
					if remA, remB := remaining[ra][instr][i], remaining[rb][instr][i]; remA != remB {
						return remA < remB
					}
					if na, nb := assignedCount[ra][instr], assignedCount[rb][instr]; na != nb {
						return na < nb
					}
					return responses[ra].Name < responses[rb].Name
				}
			}
			sort.SliceStable(yes, byDeadline(yes))
			sort.SliceStable(ifNeeded, byDeadline(ifNeeded))

			certain := len(yes) > 0
			var chosen int
			if certain {
				chosen = yes[0]
			} else {
				chosen = ifNeeded[0]
			}

			result[date][instr] = models.Assignment{
				Name:    responses[chosen].Name,
				IsGuest: false,
				Certain: &certain,
			}
			booked[date][chosen] = true
			assignedCount[chosen][instr]++
		}
	}

	return result
}

// processingOrder is priority instruments, then the others sorted by ascending
// eligible-participant count (stable, so equal counts keep poll order)
func (c Composer) processingOrder(poll *models.Poll) []string {
	priority, rest := c.split(poll)

	eligible := make(map[string]int, len(rest))
	for _, instr := range rest {
		for r := range poll.Responses {
			for _, d := range poll.Dates {
				if poll.Responses[r].Eligible(d, instr) {
					eligible[instr]++
					break
				}
			}
		}
	}

	sort.SliceStable(rest, func(a, b int) bool {
		return eligible[rest[a]] < eligible[rest[b]]
	})

	return append(priority, rest...)
}
