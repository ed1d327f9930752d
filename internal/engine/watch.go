package engine

import (
	"context"

	"AShareSentinel/internal/model"
	"AShareSentinel/internal/strategy"
)

// InvalidateSnapshot drops the cached market snapshot so the next scan or
// watch pass fetches fresh data instead of waiting out the TTL.
func (e *Engine) InvalidateSnapshot() {
	e.cache.Invalidate()
}

// RunWatch is the fast loop between full scans: it only screens for
// limit-assault movers and reports each symbol at most once per trade date.
// It reads through the shared cache, so a fresh snapshot is reused and an
// expired one refreshes for the next full scan too.
func (e *Engine) RunWatch(ctx context.Context) ([]model.Candidate, error) {
	snap, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	candidates := strategy.ScanLimitAssault(snap, e.cfg.Scoring.MaxCandidates)

	e.mu.Lock()
	defer e.mu.Unlock()

	today := snap.FetchedAt.Format("2006-01-02")
	var fresh []model.Candidate
	for _, c := range candidates {
		if e.alerted[c.Symbol] == today {
			continue
		}
		e.alerted[c.Symbol] = today
		fresh = append(fresh, c)
	}
	// Old trade dates accumulate one entry per symbol at most; prune
	// everything not from today.
	for symbol, date := range e.alerted {
		if date != today {
			delete(e.alerted, symbol)
		}
	}
	return fresh, nil
}
