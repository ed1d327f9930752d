package portfolio

import (
	"errors"
	"fmt"
	"time"

	"AShareSentinel/internal/model"
)

const TxTypeBuy = "BUY"

var (
	// ErrDuplicatePosition rejects a buy for a symbol already held.
	// This guard runs before the cash check.
	ErrDuplicatePosition = errors.New("position already open for symbol")

	// ErrInsufficientFunds rejects a buy the cash balance cannot cover.
	ErrInsufficientFunds = errors.New("insufficient cash for trade amount")
)

// NewAccount creates an empty virtual account with the contributed capital.
func NewAccount(initialCapital float64, at time.Time) model.Account {
	return model.Account{
		Cash:      initialCapital,
		Positions: make(map[string]model.Position),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// Buy opens a fixed-amount position in the account. Orders are all-or-
// nothing: either the full amount is debited and a position opened, or the
// account is left untouched and an error returned. Guard order is fixed:
// duplicate position first, then cash.
func Buy(acct *model.Account, c model.Candidate, amount float64, reason string, at time.Time) (*model.Transaction, error) {
	if _, open := acct.Positions[c.Symbol]; open {
		return nil, fmt.Errorf("%s: %w", c.Symbol, ErrDuplicatePosition)
	}
	if acct.Cash < amount {
		return nil, fmt.Errorf("%s: %w (cash %.2f, need %.2f)", c.Symbol, ErrInsufficientFunds, acct.Cash, amount)
	}
	if c.Price <= 0 {
		return nil, fmt.Errorf("%s: invalid price %.4f", c.Symbol, c.Price)
	}

	shares := amount / c.Price
	acct.Cash -= amount
	acct.Positions[c.Symbol] = model.Position{
		Symbol:    c.Symbol,
		Name:      c.Name,
		Shares:    shares,
		CostBasis: c.Price,
		Invested:  amount,
		OpenedAt:  at,
	}
	acct.UpdatedAt = at

	return &model.Transaction{
		Type:     TxTypeBuy,
		Symbol:   c.Symbol,
		Name:     c.Name,
		Shares:   shares,
		Price:    c.Price,
		Amount:   amount,
		At:       at,
		Reason:   reason,
		Strategy: c.Strategy,
	}, nil
}

// Summary is a read-only view for notification and CLI output.
type Summary struct {
	Cash          float64
	Invested      float64
	Total         float64
	PositionCount int
}

func Summarize(acct model.Account) Summary {
	invested := acct.Invested()
	return Summary{
		Cash:          acct.Cash,
		Invested:      invested,
		Total:         acct.Cash + invested,
		PositionCount: len(acct.Positions),
	}
}
