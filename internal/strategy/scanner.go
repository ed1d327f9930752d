package strategy

import (
	"sort"

	"AShareSentinel/internal/model"
)

// Selection thresholds. Bounds are inclusive on both ends unless a rule
// states otherwise; a ticker missing any bound is excluded, not penalized.
const (
	unitYi = 100_000_000 // 1亿, in yuan

	// 策略A: 强势中军/主升浪
	mainForceMinChange   = 5.0
	mainForceMaxChange   = 8.0
	mainForceMinTurnover = 7.0
	mainForceMaxTurnover = 15.0
	mainForceMinMktCap   = 10 * unitYi
	mainForceMaxMktCap   = 200 * unitYi
	mainForceMinPrice    = 5.0
	mainForceMaxPrice    = 2000.0

	// 策略B: 冲击涨停/20cm博弈
	limitAssaultMinChange   = 8.0
	limitAssaultMaxChange   = 20.0
	limitAssaultMinTurnover = 8.0 // exclusive

	// 策略C: 低位潜伏
	accumulationMinChange   = 2.0
	accumulationMaxChange   = 5.0
	accumulationMinTurnover = 6.0 // exclusive
)

// ScanMainForce finds strong pullers with concentrated money attention,
// ranked by turnover descending.
func ScanMainForce(snap *model.Snapshot, limit int) []model.Candidate {
	return scan(snap, model.StrategyMainForce, limit,
		func(q model.Quote) bool {
			return q.ChangePct >= mainForceMinChange && q.ChangePct <= mainForceMaxChange &&
				q.Turnover >= mainForceMinTurnover && q.Turnover <= mainForceMaxTurnover &&
				q.CircMktCap >= mainForceMinMktCap && q.CircMktCap <= mainForceMaxMktCap &&
				q.Price >= mainForceMinPrice && q.Price <= mainForceMaxPrice
		},
		byTurnoverDesc)
}

// ScanLimitAssault finds tickers closing in on the limit-up board
// (20cm boards included), ranked by percent change descending.
func ScanLimitAssault(snap *model.Snapshot, limit int) []model.Candidate {
	return scan(snap, model.StrategyLimitAssault, limit,
		func(q model.Quote) bool {
			return q.ChangePct >= limitAssaultMinChange && q.ChangePct <= limitAssaultMaxChange &&
				q.Turnover > limitAssaultMinTurnover
		},
		byChangeDesc)
}

// ScanAccumulation finds quiet low-level absorption, ranked by turnover
// descending.
func ScanAccumulation(snap *model.Snapshot, limit int) []model.Candidate {
	return scan(snap, model.StrategyAccumulation, limit,
		func(q model.Quote) bool {
			return q.ChangePct >= accumulationMinChange && q.ChangePct <= accumulationMaxChange &&
				q.Turnover > accumulationMinTurnover
		},
		byTurnoverDesc)
}

// ScanAll runs the three strategies over one snapshot. The same symbol may
// appear under more than one strategy and is scored per strategy context.
func ScanAll(snap *model.Snapshot, limit int) []model.Candidate {
	var all []model.Candidate
	all = append(all, ScanMainForce(snap, limit)...)
	all = append(all, ScanLimitAssault(snap, limit)...)
	all = append(all, ScanAccumulation(snap, limit)...)
	return all
}

func byTurnoverDesc(a, b model.Quote) bool {
	if a.Turnover != b.Turnover {
		return a.Turnover > b.Turnover
	}
	return a.Symbol < b.Symbol
}

func byChangeDesc(a, b model.Quote) bool {
	if a.ChangePct != b.ChangePct {
		return a.ChangePct > b.ChangePct
	}
	return a.Symbol < b.Symbol
}

// scan is the shared filter-rank-cap pipeline. Pure function over the
// snapshot: quote fields are copied into each candidate at filter time.
func scan(snap *model.Snapshot, tag model.Strategy, limit int, match func(model.Quote) bool, less func(a, b model.Quote) bool) []model.Candidate {
	if snap == nil {
		return nil
	}
	var matched []model.Quote
	seen := make(map[string]struct{})
	for _, q := range snap.Quotes {
		if !match(q) {
			continue
		}
		if _, dup := seen[q.Symbol]; dup {
			continue
		}
		seen[q.Symbol] = struct{}{}
		matched = append(matched, q)
	}
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	candidates := make([]model.Candidate, len(matched))
	for i, q := range matched {
		candidates[i] = model.Candidate{Strategy: tag, Rank: i + 1, Quote: q}
	}
	return candidates
}
