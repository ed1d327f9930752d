package strategy

import (
	"testing"
	"time"

	"AShareSentinel/internal/model"
)

func snap(quotes ...model.Quote) *model.Snapshot {
	return &model.Snapshot{Quotes: quotes, FetchedAt: time.Now()}
}

func quote(symbol string, change, turnover, mktCapYi, price float64) model.Quote {
	return model.Quote{
		Symbol:     symbol,
		Name:       "测试" + symbol,
		Price:      price,
		ChangePct:  change,
		Turnover:   turnover,
		CircMktCap: mktCapYi * unitYi,
	}
}

func TestScanMainForce_Bounds(t *testing.T) {
	s := snap(
		quote("000001", 6.0, 10.0, 50, 12),  // in
		quote("000002", 5.0, 7.0, 10, 5),    // in: all lower bounds inclusive
		quote("000003", 8.0, 15.0, 200, 20), // in: all upper bounds inclusive
		quote("000004", 4.9, 10.0, 50, 12),  // out: change below
		quote("000005", 8.1, 10.0, 50, 12),  // out: change above
		quote("000006", 6.0, 6.9, 50, 12),   // out: turnover below
		quote("000007", 6.0, 15.1, 50, 12),  // out: turnover above
		quote("000008", 6.0, 10.0, 9, 12),   // out: market cap below
		quote("000009", 6.0, 10.0, 201, 12), // out: market cap above
		quote("000010", 6.0, 10.0, 50, 4.9), // out: price below
	)
	got := ScanMainForce(s, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	// Ranked by turnover descending.
	if got[0].Symbol != "000003" || got[1].Symbol != "000001" || got[2].Symbol != "000002" {
		t.Errorf("unexpected ranking: %s, %s, %s", got[0].Symbol, got[1].Symbol, got[2].Symbol)
	}
	for i, c := range got {
		if c.Rank != i+1 {
			t.Errorf("candidate %s has rank %d, expected %d", c.Symbol, c.Rank, i+1)
		}
		if c.Strategy != model.StrategyMainForce {
			t.Errorf("candidate %s has strategy %s", c.Symbol, c.Strategy)
		}
	}
}

func TestScanLimitAssault_BoundsAndRanking(t *testing.T) {
	s := snap(
		quote("300001", 19.9, 12.0, 50, 30),
		quote("300002", 8.0, 8.1, 50, 30),  // lower change bound inclusive
		quote("300003", 20.0, 9.0, 50, 30), // upper change bound inclusive
		quote("300004", 9.0, 8.0, 50, 30),  // out: turnover bound exclusive
		quote("300005", 7.9, 12.0, 50, 30), // out: change below
		quote("300006", 20.1, 12.0, 50, 30),
	)
	got := ScanLimitAssault(s, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	// Ranked by change descending: the one closest to the board first.
	if got[0].Symbol != "300003" || got[1].Symbol != "300001" || got[2].Symbol != "300002" {
		t.Errorf("unexpected ranking: %s, %s, %s", got[0].Symbol, got[1].Symbol, got[2].Symbol)
	}
}

func TestScanAccumulation_Bounds(t *testing.T) {
	s := snap(
		quote("600001", 2.0, 6.1, 50, 10), // in
		quote("600002", 5.0, 8.0, 50, 10), // in
		quote("600003", 1.9, 8.0, 50, 10), // out
		quote("600004", 5.1, 8.0, 50, 10), // out
		quote("600005", 3.0, 6.0, 50, 10), // out: turnover bound exclusive
	)
	got := ScanAccumulation(s, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestScan_NoDuplicateWithinStrategy(t *testing.T) {
	q := quote("000001", 6.0, 10.0, 50, 12)
	s := snap(q, q) // duplicate row in the snapshot
	got := ScanMainForce(s, 10)
	if len(got) != 1 {
		t.Errorf("expected deduplicated output, got %d entries", len(got))
	}
}

func TestScan_LimitCap(t *testing.T) {
	var quotes []model.Quote
	for i := 0; i < 25; i++ {
		quotes = append(quotes, quote(
			// distinct symbols and turnovers
			string(rune('a'+i))+"00001", 6.0, 7.0+float64(i)*0.3, 50, 12))
	}
	got := ScanMainForce(snap(quotes...), 10)
	if len(got) != 10 {
		t.Errorf("expected limit cap at 10, got %d", len(got))
	}
}

func TestScanAll_SymbolMayCrossStrategies(t *testing.T) {
	// Change 8.0 with turnover 9 satisfies both A (upper bound) and B (lower bound).
	s := snap(quote("002001", 8.0, 9.0, 50, 12))
	all := ScanAll(s, 10)
	if len(all) != 2 {
		t.Fatalf("expected the ticker in two strategies, got %d entries", len(all))
	}
	if all[0].Strategy == all[1].Strategy {
		t.Error("expected two distinct strategy tags")
	}
}
