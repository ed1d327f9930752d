package engine

import (
	"fmt"
	"log"
	"sort"
	"time"

	"AShareSentinel/internal/model"
	"AShareSentinel/internal/portfolio"
)

// executeTriggered settles the cycle's triggered buys one by one against
// the working copy of the account. Order is deterministic: strategy rank
// first, symbol as tie-break, so a cash shortfall always rejects the same
// tail. Rejected buys are logged and skipped; the rest still settle.
func (e *Engine) executeTriggered(acct *model.Account, triggered []string, best map[string]scoredCandidate, at time.Time) []model.Transaction {
	ordered := make([]string, len(triggered))
	copy(ordered, triggered)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := best[ordered[i]].cand, best[ordered[j]].cand
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Symbol < b.Symbol
	})

	var txs []model.Transaction
	for _, symbol := range ordered {
		sc, ok := best[symbol]
		if !ok {
			continue
		}
		reason := fmt.Sprintf("连续%d次上榜, 综合评分%.0f", e.cfg.Portfolio.StreakThreshold, sc.result.Composite)
		tx, err := portfolio.Buy(acct, sc.cand, e.cfg.Portfolio.TradeAmount, reason, at)
		if err != nil {
			log.Printf("[INFO] auto-trade skipped for %s: %v", symbol, err)
			continue
		}
		log.Printf("[INFO] auto-trade: bought %s(%s) %.0f股 @ %.2f", sc.cand.Name, symbol, tx.Shares, tx.Price)
		txs = append(txs, *tx)
	}
	return txs
}
