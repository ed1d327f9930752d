package notifier

import (
	"fmt"
	"sort"
	"strings"

	"AShareSentinel/internal/engine"
	"AShareSentinel/internal/model"
	"AShareSentinel/internal/portfolio"
)

// FormatCycleReport formats a completed scan into a Telegram message.
// Only qualifying-or-better entries are listed; an empty cycle collapses
// to a one-liner.
func FormatCycleReport(r *engine.CycleReport, qualifyingThreshold float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 <b>选股扫描</b> | %s\n\n", r.CycleAt.Format("2006-01-02 15:04")))

	shown := 0
	for _, s := range sortedByComposite(r.Scores) {
		if s.Composite < qualifyingThreshold {
			continue
		}
		shown++
		capMark := ""
		if s.CapApplied {
			capMark = " ⚠️缩量"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b>(%s) [%s]\n", recommendIcon(s.Recommendation), s.Name, s.Symbol, s.Strategy.Label()))
		b.WriteString(fmt.Sprintf("  %.2f元 %+.2f%% 换手%.1f%% | 综合<b>%.0f</b>分%s\n",
			s.Price, s.ChangePct, s.Turnover, s.Composite, capMark))
		b.WriteString(fmt.Sprintf("  量能%.0f 趋势%.0f 形态%.0f 情绪%.0f → %s\n",
			s.Components.Volume, s.Components.Trend, s.Components.Pattern, s.Components.Sentiment, s.Recommendation))
		if s.Rationale != "" {
			b.WriteString(fmt.Sprintf("  💡 %s\n", s.Rationale))
		}
		b.WriteString("\n")
	}
	if shown == 0 {
		b.WriteString("本轮无达标标的\n")
	}

	for _, tx := range r.Transactions {
		b.WriteString(FormatBuy(tx))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n💼 现金 ¥%.0f | 持仓 %d只 | 总资产 ¥%.0f",
		r.Account.Cash, r.Account.PositionCount, r.Account.Total))
	return b.String()
}

// FormatBuy formats one simulated fill.
func FormatBuy(tx model.Transaction) string {
	return fmt.Sprintf("✅ <b>模拟买入</b> %s(%s)\n  %.0f股 @ %.2f元, 共¥%.0f\n  原因: %s",
		tx.Name, tx.Symbol, tx.Shares, tx.Price, tx.Amount, tx.Reason)
}

// FormatWatchAlerts formats fresh limit-assault movers from the fast loop.
func FormatWatchAlerts(alerts []model.Candidate) string {
	var b strings.Builder
	b.WriteString("🚨 <b>异动提醒: 冲击涨停</b>\n\n")
	for _, c := range alerts {
		b.WriteString(fmt.Sprintf("%d. %s(%s) %+.2f%% 换手%.1f%% 现价%.2f\n",
			c.Rank, c.Name, c.Symbol, c.ChangePct, c.Turnover, c.Price))
	}
	return b.String()
}

// FormatAccount formats the virtual account with its open positions.
func FormatAccount(acct model.Account) string {
	s := portfolio.Summarize(acct)
	var b strings.Builder
	b.WriteString("💼 <b>模拟账户</b>\n\n")
	b.WriteString(fmt.Sprintf("现金: ¥%.2f\n", s.Cash))
	b.WriteString(fmt.Sprintf("持仓成本: ¥%.2f (%d只)\n", s.Invested, s.PositionCount))
	b.WriteString(fmt.Sprintf("总资产: ¥%.2f\n", s.Total))

	if len(acct.Positions) > 0 {
		b.WriteString("\n<b>持仓明细:</b>\n")
		symbols := make([]string, 0, len(acct.Positions))
		for sym := range acct.Positions {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			p := acct.Positions[sym]
			b.WriteString(fmt.Sprintf("  %s(%s) %.0f股 成本%.2f 投入¥%.0f\n",
				p.Name, p.Symbol, p.Shares, p.CostBasis, p.Invested))
		}
	}
	b.WriteString(fmt.Sprintf("\n更新时间: %s", acct.UpdatedAt.Format("2006-01-02 15:04")))
	return b.String()
}

// FormatStreaks formats the live streak table.
func FormatStreaks(streaks []model.StreakState, threshold int) string {
	if len(streaks) == 0 {
		return "📊 当前无连续上榜标的"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>连续上榜</b> (触发线: %d次)\n\n", threshold))
	ordered := make([]model.StreakState, len(streaks))
	copy(ordered, streaks)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return ordered[i].Symbol < ordered[j].Symbol
	})
	for _, s := range ordered {
		b.WriteString(fmt.Sprintf("  %s × %d\n", s.Symbol, s.Count))
	}
	return b.String()
}

func sortedByComposite(records []model.ScoreRecord) []model.ScoreRecord {
	out := make([]model.ScoreRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Composite != out[j].Composite {
			return out[i].Composite > out[j].Composite
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

func recommendIcon(r model.Recommendation) string {
	switch r {
	case model.RecommendStrong:
		return "🔥"
	case model.RecommendWatch:
		return "👀"
	default:
		return "▫️"
	}
}
