package notifier

import (
	"strings"
	"testing"
	"time"

	"AShareSentinel/internal/engine"
	"AShareSentinel/internal/model"
	"AShareSentinel/internal/portfolio"
)

func TestFormatCycleReport(t *testing.T) {
	r := &engine.CycleReport{
		CycleAt: time.Date(2026, 8, 21, 10, 30, 0, 0, time.Local),
		Scores: []model.ScoreRecord{
			{
				Symbol: "000001", Name: "平安银行", Strategy: model.StrategyMainForce,
				Price: 12.5, ChangePct: 6.2, Turnover: 9.8, Composite: 82,
				Components:     model.ComponentScores{Volume: 35, Trend: 27, Pattern: 15, Sentiment: 5},
				Recommendation: model.RecommendWatch, Rationale: "放量上攻",
			},
			{
				Symbol: "600000", Name: "浦发银行", Strategy: model.StrategyAccumulation,
				Composite: 55, Recommendation: model.RecommendObserve,
			},
		},
		Transactions: []model.Transaction{
			{Type: "BUY", Symbol: "000001", Name: "平安银行", Shares: 4000, Price: 12.5,
				Amount: 50000, Reason: "连续2次上榜"},
		},
		Account: portfolio.Summary{Cash: 950000, Invested: 50000, Total: 1000000, PositionCount: 1},
	}

	msg := FormatCycleReport(r, 70)
	for _, want := range []string{"平安银行", "000001", "综合<b>82</b>分", "放量上攻", "模拟买入", "950000"} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
	// The below-threshold entry stays out of the message.
	if strings.Contains(msg, "浦发银行") {
		t.Error("observe-only entry should not be listed")
	}
}

func TestFormatCycleReport_EmptyCycle(t *testing.T) {
	r := &engine.CycleReport{CycleAt: time.Now()}
	msg := FormatCycleReport(r, 70)
	if !strings.Contains(msg, "本轮无达标标的") {
		t.Errorf("expected empty-cycle line:\n%s", msg)
	}
}

func TestFormatStreaks_OrderedByCount(t *testing.T) {
	msg := FormatStreaks([]model.StreakState{
		{Symbol: "000001", Count: 1},
		{Symbol: "300750", Count: 3},
	}, 2)
	if strings.Index(msg, "300750") > strings.Index(msg, "000001") {
		t.Errorf("expected longest streak first:\n%s", msg)
	}
}

func TestFormatAccount(t *testing.T) {
	acct := portfolio.NewAccount(1000000, time.Now())
	msg := FormatAccount(acct)
	if !strings.Contains(msg, "1000000.00") {
		t.Errorf("expected cash in output:\n%s", msg)
	}
}
