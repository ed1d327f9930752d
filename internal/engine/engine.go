package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"AShareSentinel/internal/advisory"
	"AShareSentinel/internal/calculator"
	"AShareSentinel/internal/config"
	"AShareSentinel/internal/feed"
	"AShareSentinel/internal/model"
	"AShareSentinel/internal/portfolio"
	"AShareSentinel/internal/scoring"
	"AShareSentinel/internal/store"
	"AShareSentinel/internal/strategy"
	"AShareSentinel/internal/streak"
)

// Enough history for the annual MA plus some slack for suspensions.
const barLookbackDays = 300

// Engine runs the scan pipeline: snapshot, strategy filters, scoring,
// streak tracking, simulated trading, persistence. One cycle runs at a
// time; the account and streak table have a single writer.
type Engine struct {
	cfg     *config.Config
	cache   *feed.SnapshotCache
	fetcher feed.Fetcher
	scorer  *scoring.Engine
	advisor advisory.Advisor
	db      store.Store

	mu      sync.Mutex
	account model.Account
	streaks []model.StreakState
	alerted map[string]string // watch alerts sent, symbol -> trade date
}

// CycleReport summarizes one completed cycle for notification and CLI output.
type CycleReport struct {
	CycleAt      time.Time
	Scores       []model.ScoreRecord
	Streaks      []model.StreakState
	Triggered    []string
	Transactions []model.Transaction
	Account      portfolio.Summary
}

// New restores persisted state and builds a ready engine. A fresh database
// starts the account at the configured initial capital.
func New(cfg *config.Config, cache *feed.SnapshotCache, fetcher feed.Fetcher, advisor advisory.Advisor, db store.Store) (*Engine, error) {
	acct, err := db.LoadAccount()
	if err != nil {
		return nil, err
	}
	if acct == nil {
		a := portfolio.NewAccount(cfg.Portfolio.InitialCapital, time.Now())
		acct = &a
		log.Printf("[INFO] fresh account created with capital %.0f", cfg.Portfolio.InitialCapital)
	} else {
		log.Printf("[INFO] account restored: cash %.2f, %d open positions", acct.Cash, len(acct.Positions))
	}

	streaks, err := db.LoadStreaks()
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:     cfg,
		cache:   cache,
		fetcher: fetcher,
		scorer:  scoring.NewEngine(cfg),
		advisor: advisor,
		db:      db,
		account: *acct,
		streaks: streaks,
		alerted: make(map[string]string),
	}, nil
}

type scoredCandidate struct {
	cand   model.Candidate
	result scoring.Result
}

// RunCycle executes one full scan. A feed failure aborts before any state
// change; a persistence failure discards the cycle's in-memory effects, so
// the engine never drifts from what the database recorded.
func (e *Engine) RunCycle(ctx context.Context) (*CycleReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	cycleAt := time.Now()

	candidates := strategy.ScanAll(snap, e.cfg.Scoring.MaxCandidates)
	log.Printf("[INFO] scan matched %d candidates across strategies", len(candidates))

	heat := scoring.RankSectors(snap)
	indicators := e.enrich(ctx, candidates, heat)

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scoredCandidate{cand: c, result: e.scorer.Score(c, indicators[c.Symbol])})
	}

	// A symbol matched by several strategies counts once, at its best
	// composite, for streaks and trading.
	best := make(map[string]scoredCandidate, len(scored))
	for _, sc := range scored {
		if prev, ok := best[sc.cand.Symbol]; !ok || sc.result.Composite > prev.result.Composite {
			best[sc.cand.Symbol] = sc
		}
	}

	rationales := e.explain(ctx, best)
	records := buildRecords(scored, best, rationales, cycleAt)

	qualifying := streak.Qualifying(records, e.cfg.Scoring.QualifyingThreshold)

	nextStreaks, triggered := streak.Advance(e.streaks, qualifying, e.cfg.Portfolio.StreakThreshold, cycleAt)

	acct := e.account.Clone()
	var txs []model.Transaction
	if e.cfg.Portfolio.AutoTrade {
		txs = e.executeTriggered(&acct, triggered, best, cycleAt)
	}

	if err := e.db.CommitCycle(&store.CycleResult{
		CycleAt:      cycleAt,
		Scores:       records,
		Streaks:      nextStreaks,
		Account:      acct,
		Transactions: txs,
	}); err != nil {
		return nil, err
	}

	// The database accepted the cycle; adopt its state.
	e.account = acct
	e.streaks = nextStreaks

	return &CycleReport{
		CycleAt:      cycleAt,
		Scores:       records,
		Streaks:      nextStreaks,
		Triggered:    triggered,
		Transactions: txs,
		Account:      portfolio.Summarize(acct),
	}, nil
}

// enrich fetches daily bars per unique candidate symbol and derives the
// scoring indicators. Enrichment failures degrade the candidate to neutral
// inputs instead of failing the cycle.
func (e *Engine) enrich(ctx context.Context, candidates []model.Candidate, heat map[string]model.SectorHeat) map[string]*model.TickerIndicators {
	out := make(map[string]*model.TickerIndicators)
	for _, c := range candidates {
		if _, done := out[c.Symbol]; done {
			continue
		}
		ind := &model.TickerIndicators{Pattern: model.PatternNone}
		bars, err := e.fetcher.FetchDailyBars(ctx, c.Symbol, barLookbackDays)
		if err != nil {
			log.Printf("[WARN] daily bars for %s unavailable, scoring on neutral indicators: %v", c.Symbol, err)
		} else if built, err := calculator.BuildIndicators(c.Symbol, bars); err != nil {
			log.Printf("[WARN] indicators for %s: %v", c.Symbol, err)
		} else {
			ind = built
		}
		ind.SectorHeat = scoring.HeatOf(heat, c.Sector)
		out[c.Symbol] = ind
	}
	return out
}

// explain asks the advisor for rationale text on the symbols worth
// mentioning. Advisory is strictly best-effort.
func (e *Engine) explain(ctx context.Context, best map[string]scoredCandidate) map[string]string {
	rationales := make(map[string]string)
	if e.advisor == nil {
		return rationales
	}
	for symbol, sc := range best {
		if sc.result.Recommendation == model.RecommendObserve {
			continue
		}
		text, err := e.advisor.Explain(ctx, sc.cand, sc.result.Components, sc.result.Composite)
		if err != nil {
			log.Printf("[WARN] advisory for %s skipped: %v", symbol, err)
			continue
		}
		if text != "" {
			rationales[symbol] = text
		}
	}
	return rationales
}

func buildRecords(scored []scoredCandidate, best map[string]scoredCandidate, rationales map[string]string, cycleAt time.Time) []model.ScoreRecord {
	records := make([]model.ScoreRecord, 0, len(scored))
	for _, sc := range scored {
		r := model.ScoreRecord{
			Symbol:         sc.cand.Symbol,
			Name:           sc.cand.Name,
			Strategy:       sc.cand.Strategy,
			Rank:           sc.cand.Rank,
			CycleAt:        cycleAt,
			Price:          sc.cand.Price,
			ChangePct:      sc.cand.ChangePct,
			Turnover:       sc.cand.Turnover,
			VolumeRatio:    sc.cand.VolumeRatio,
			Sector:         sc.cand.Sector,
			Components:     sc.result.Components,
			Composite:      sc.result.Composite,
			CapApplied:     sc.result.CapApplied,
			Recommendation: sc.result.Recommendation,
		}
		// Rationale rides on the strategy entry that won the dedupe.
		if b, ok := best[sc.cand.Symbol]; ok && b.cand.Strategy == sc.cand.Strategy {
			r.Rationale = rationales[sc.cand.Symbol]
		}
		records = append(records, r)
	}
	return records
}

// Account returns a point-in-time copy of the virtual account.
func (e *Engine) Account() model.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.account.Clone()
}

// Streaks returns a copy of the current streak table.
func (e *Engine) Streaks() []model.StreakState {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.StreakState, len(e.streaks))
	copy(out, e.streaks)
	return out
}
