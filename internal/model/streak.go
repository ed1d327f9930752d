package model

import "time"

// StreakState counts consecutive cycles in which a ticker's composite score
// met the qualifying threshold. A ticker absent from the qualifying set in a
// cycle resets to zero in that same cycle; absent entries and zero entries
// are equivalent.
type StreakState struct {
	Symbol   string
	Count    int
	LastSeen time.Time
}
