package store

import (
	"path/filepath"
	"testing"
	"time"

	"AShareSentinel/internal/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sentinel.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleCycle(at time.Time) *CycleResult {
	acct := model.Account{
		Cash: 950000,
		Positions: map[string]model.Position{
			"000001": {Symbol: "000001", Name: "平安银行", Shares: 4000, CostBasis: 12.5, Invested: 50000, OpenedAt: at},
		},
		CreatedAt: at.Add(-time.Hour),
		UpdatedAt: at,
	}
	return &CycleResult{
		CycleAt: at,
		Scores: []model.ScoreRecord{
			{
				Symbol: "000001", Name: "平安银行", Strategy: model.StrategyMainForce,
				Rank: 1, CycleAt: at, Price: 12.5, ChangePct: 6.2, Turnover: 9.8,
				VolumeRatio: 2.4, Sector: "银行",
				Components:  model.ComponentScores{Volume: 35, Trend: 27, Pattern: 15, Sentiment: 5},
				Composite:   82, Recommendation: model.RecommendWatch, Rationale: "放量上攻",
			},
			{
				Symbol: "300750", Name: "宁德时代", Strategy: model.StrategyLimitAssault,
				Rank: 1, CycleAt: at, Price: 210, ChangePct: 9.1, Turnover: 12,
				VolumeRatio: 3.2, Components: model.ComponentScores{Volume: 40, Trend: 30, Pattern: 10, Sentiment: 9},
				Composite:   89, CapApplied: false, Recommendation: model.RecommendWatch,
			},
		},
		Streaks: []model.StreakState{
			{Symbol: "000001", Count: 2, LastSeen: at},
			{Symbol: "300750", Count: 1, LastSeen: at},
		},
		Account: acct,
		Transactions: []model.Transaction{
			{Type: "BUY", Symbol: "000001", Name: "平安银行", Shares: 4000, Price: 12.5,
				Amount: 50000, At: at, Reason: "连续2次上榜", Strategy: model.StrategyMainForce},
		},
	}
}

func TestLoadAccount_EmptyDatabase(t *testing.T) {
	s := testStore(t)
	acct, err := s.LoadAccount()
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	if acct != nil {
		t.Errorf("expected nil account on fresh database, got %+v", acct)
	}
}

func TestCommitCycle_RoundTrip(t *testing.T) {
	s := testStore(t)
	at := time.Now().Truncate(time.Second)
	if err := s.CommitCycle(sampleCycle(at)); err != nil {
		t.Fatalf("commit: %v", err)
	}

	acct, err := s.LoadAccount()
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	if acct == nil {
		t.Fatal("expected persisted account")
	}
	if acct.Cash != 950000 {
		t.Errorf("cash: expected 950000, got %.2f", acct.Cash)
	}
	pos, ok := acct.Positions["000001"]
	if !ok || pos.Invested != 50000 {
		t.Errorf("unexpected positions: %+v", acct.Positions)
	}

	streaks, err := s.LoadStreaks()
	if err != nil {
		t.Fatalf("load streaks: %v", err)
	}
	if len(streaks) != 2 {
		t.Fatalf("expected 2 streaks, got %d", len(streaks))
	}
	if streaks[0].Symbol != "000001" || streaks[0].Count != 2 {
		t.Errorf("unexpected streak: %+v", streaks[0])
	}

	records, err := s.RecentScores(10)
	if err != nil {
		t.Fatalf("recent scores: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Same cycle: ordered by composite descending.
	if records[0].Symbol != "300750" {
		t.Errorf("expected highest composite first, got %s", records[0].Symbol)
	}
	if records[1].Rationale != "放量上攻" {
		t.Errorf("rationale lost in round trip: %q", records[1].Rationale)
	}
	if records[0].Rationale != "" {
		t.Errorf("empty rationale should stay empty, got %q", records[0].Rationale)
	}
}

func TestCommitCycle_ReplacesStreaksWholesale(t *testing.T) {
	s := testStore(t)
	at := time.Now().Truncate(time.Second)
	if err := s.CommitCycle(sampleCycle(at)); err != nil {
		t.Fatalf("commit 1: %v", err)
	}

	next := sampleCycle(at.Add(5 * time.Minute))
	next.Streaks = []model.StreakState{{Symbol: "600519", Count: 1, LastSeen: next.CycleAt}}
	if err := s.CommitCycle(next); err != nil {
		t.Fatalf("commit 2: %v", err)
	}

	streaks, err := s.LoadStreaks()
	if err != nil {
		t.Fatalf("load streaks: %v", err)
	}
	if len(streaks) != 1 || streaks[0].Symbol != "600519" {
		t.Errorf("expected wholesale replacement, got %+v", streaks)
	}
}

func TestRecentScores_Limit(t *testing.T) {
	s := testStore(t)
	at := time.Now().Truncate(time.Second)
	if err := s.CommitCycle(sampleCycle(at)); err != nil {
		t.Fatalf("commit: %v", err)
	}
	records, err := s.RecentScores(1)
	if err != nil {
		t.Fatalf("recent scores: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}
