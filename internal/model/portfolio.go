package model

import "time"

// Position is an open simulated holding.
type Position struct {
	Symbol    string
	Name      string
	Shares    float64 // fractional-share simulation allowed
	CostBasis float64 // cost per share at open
	Invested  float64 // amount debited from cash
	OpenedAt  time.Time
}

// Transaction records a single simulated fill.
type Transaction struct {
	Type     string // "BUY"
	Symbol   string
	Name     string
	Shares   float64
	Price    float64
	Amount   float64
	At       time.Time
	Reason   string
	Strategy Strategy
}

// Account holds the virtual portfolio. Invariant:
// Cash + sum(Positions[*].Invested) == total capital contributed, and
// Cash never goes negative; a buy that would violate this is rejected whole.
type Account struct {
	Cash      float64
	Positions map[string]Position // keyed by symbol, at most one open per symbol
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy safe to mutate independently.
func (a Account) Clone() Account {
	cp := a
	cp.Positions = make(map[string]Position, len(a.Positions))
	for k, v := range a.Positions {
		cp.Positions[k] = v
	}
	return cp
}

// Invested returns the total amount committed to open positions.
func (a Account) Invested() float64 {
	total := 0.0
	for _, p := range a.Positions {
		total += p.Invested
	}
	return total
}
