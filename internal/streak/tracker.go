package streak

import (
	"sort"
	"time"

	"AShareSentinel/internal/model"
)

// Advance rolls the streak table forward by one completed cycle. Every
// qualifying symbol gains one; any tracked symbol absent from the qualifying
// set resets to zero and is dropped, since a zero streak carries no state.
//
// Triggered reports the symbols whose count reached exactly threshold this
// cycle. A symbol that stays above the threshold does not trigger again
// until it resets and climbs back.
func Advance(current []model.StreakState, qualifying map[string]struct{}, threshold int, cycleAt time.Time) (next []model.StreakState, triggered []string) {
	prev := make(map[string]int, len(current))
	for _, s := range current {
		prev[s.Symbol] = s.Count
	}

	next = make([]model.StreakState, 0, len(qualifying))
	for symbol := range qualifying {
		count := prev[symbol] + 1
		next = append(next, model.StreakState{Symbol: symbol, Count: count, LastSeen: cycleAt})
		if count == threshold {
			triggered = append(triggered, symbol)
		}
	}

	sort.Slice(next, func(i, j int) bool { return next[i].Symbol < next[j].Symbol })
	sort.Strings(triggered)
	return next, triggered
}

// Qualifying builds the symbol set from the cycle's qualifying records.
func Qualifying(records []model.ScoreRecord, threshold float64) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range records {
		if r.Composite >= threshold {
			set[r.Symbol] = struct{}{}
		}
	}
	return set
}
