package scoring

import (
	"testing"
	"time"

	"AShareSentinel/internal/config"
	"AShareSentinel/internal/model"
)

func testEngine(t *testing.T, scope string) *Engine {
	t.Helper()
	cfg, err := config.Load("/nonexistent")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	cfg.Scoring.ShrinkCapScope = scope
	return NewEngine(cfg)
}

func candidate(price, changePct, turnover, volumeRatio float64) model.Candidate {
	return model.Candidate{
		Strategy: model.StrategyMainForce,
		Rank:     1,
		Quote: model.Quote{
			Symbol:      "000001",
			Name:        "平安银行",
			Price:       price,
			ChangePct:   changePct,
			Turnover:    turnover,
			VolumeRatio: volumeRatio,
		},
	}
}

func bullishIndicators() *model.TickerIndicators {
	return &model.TickerIndicators{
		MA5: 11.8, MA10: 11.5, MA20: 11.0, MA60: 10.0, MA250: 9.0,
		Pattern:    model.PatternReversalBreak,
		SectorHeat: model.HeatMainstream,
	}
}

func TestScore_TopBands(t *testing.T) {
	e := testEngine(t, config.CapScopeComposite)
	r := e.Score(candidate(12, 6, 12, 3.5), bullishIndicators())

	if r.Components.Volume != 40 {
		t.Errorf("volume: expected 40, got %.0f", r.Components.Volume)
	}
	if r.Components.Trend != 30 {
		t.Errorf("trend: expected 30, got %.0f", r.Components.Trend)
	}
	if r.Components.Pattern != 15 {
		t.Errorf("pattern: expected 15, got %.0f", r.Components.Pattern)
	}
	if r.Components.Sentiment != 9 {
		t.Errorf("sentiment: expected 9, got %.0f", r.Components.Sentiment)
	}
	if r.Composite != 94 {
		t.Errorf("composite: expected 94, got %.0f", r.Composite)
	}
	if r.Recommendation != model.RecommendStrong {
		t.Errorf("expected strong recommendation, got %s", r.Recommendation)
	}
}

func TestScore_CompositeWithinRange(t *testing.T) {
	e := testEngine(t, config.CapScopeComposite)
	cases := []struct {
		name string
		c    model.Candidate
		ind  *model.TickerIndicators
	}{
		{"everything strong", candidate(12, 6, 12, 3.5), bullishIndicators()},
		{"everything weak", candidate(5, 2, 6.5, 0.5), &model.TickerIndicators{
			MA250: 100, Pattern: model.PatternLongUpperShadow, SectorHeat: model.HeatIsolated,
		}},
		{"nil indicators", candidate(12, 6, 12, 3.5), nil},
	}
	for _, tc := range cases {
		r := e.Score(tc.c, tc.ind)
		if r.Composite < 0 || r.Composite > 100 {
			t.Errorf("%s: composite %.1f out of range", tc.name, r.Composite)
		}
	}
}

func TestScore_ShrinkingVolumeCapsComposite(t *testing.T) {
	e := testEngine(t, config.CapScopeComposite)
	ind := bullishIndicators()
	ind.ShrinkingVolume = true
	r := e.Score(candidate(12, 6, 12, 3.5), ind)

	if !r.CapApplied {
		t.Error("expected cap flag")
	}
	if r.Composite != 70 {
		t.Errorf("expected composite held at 70, got %.0f", r.Composite)
	}
	// Components themselves stay untouched in composite scope.
	if r.Components.Volume != 40 {
		t.Errorf("volume component should be uncapped, got %.0f", r.Components.Volume)
	}
}

func TestScore_ShrinkingVolumeCapsVolumeComponent(t *testing.T) {
	e := testEngine(t, config.CapScopeVolume)
	ind := bullishIndicators()
	ind.ShrinkingVolume = true
	r := e.Score(candidate(12, 6, 12, 3.5), ind)

	if r.Components.Volume != 28 {
		t.Errorf("expected volume held at 28, got %.0f", r.Components.Volume)
	}
	// 28 + 30 + 15 + 9
	if r.Composite != 82 {
		t.Errorf("expected composite 82, got %.0f", r.Composite)
	}
}

func TestScoreTrend_AnnualLinePenalty(t *testing.T) {
	ind := &model.TickerIndicators{MA20: 11.0, MA60: 10.0, MA250: 20.0}
	// Mid-term uptrend worth 22, minus 8 below the annual line.
	got := scoreTrend(12, ind)
	if got != 14 {
		t.Errorf("expected 14, got %.0f", got)
	}
}

func TestScoreTrend_FloorAtZero(t *testing.T) {
	ind := &model.TickerIndicators{MA250: 20.0}
	got := scoreTrend(5, ind)
	if got != 0 {
		t.Errorf("expected floor at 0, got %.0f", got)
	}
}

func TestRecommendationTiers(t *testing.T) {
	e := testEngine(t, config.CapScopeComposite)
	if got := e.recommend(90); got != model.RecommendStrong {
		t.Errorf("90 should be strong, got %s", got)
	}
	if got := e.recommend(89.9); got != model.RecommendWatch {
		t.Errorf("89.9 should be watch, got %s", got)
	}
	if got := e.recommend(69.9); got != model.RecommendObserve {
		t.Errorf("69.9 should be observe-only, got %s", got)
	}
}

func TestRankSectors(t *testing.T) {
	quotes := []model.Quote{
		{Symbol: "1", Sector: "半导体", ChangePct: 9},
		{Symbol: "2", Sector: "半导体", ChangePct: 7},
		{Symbol: "3", Sector: "白酒", ChangePct: 6},
		{Symbol: "4", Sector: "银行", ChangePct: 5},
		{Symbol: "5", Sector: "券商", ChangePct: 4},
		{Symbol: "6", Sector: "地产", ChangePct: -5},
	}
	// Pad with enough weak sectors to push 地产 out of the follow-on band.
	for i := 0; i < 6; i++ {
		quotes = append(quotes, model.Quote{
			Symbol: string(rune('a' + i)), Sector: "板块" + string(rune('A'+i)), ChangePct: float64(3 - i),
		})
	}
	heat := RankSectors(&model.Snapshot{Quotes: quotes, FetchedAt: time.Now()})

	if heat["半导体"] != model.HeatMainstream {
		t.Errorf("半导体 should be mainstream, got %s", heat["半导体"])
	}
	if heat["白酒"] != model.HeatMainstream {
		t.Errorf("白酒 should be mainstream, got %s", heat["白酒"])
	}
	if heat["券商"] != model.HeatFollowOn {
		t.Errorf("券商 should be follow-on, got %s", heat["券商"])
	}
	if heat["地产"] != model.HeatIsolated {
		t.Errorf("地产 should be isolated, got %s", heat["地产"])
	}
	if HeatOf(heat, "不存在") != model.HeatIsolated {
		t.Error("unknown sector should grade as isolated")
	}
}
