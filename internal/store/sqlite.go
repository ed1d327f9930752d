package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"AShareSentinel/internal/model"
)

// SQLiteStore persists scan history and the virtual account to SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &PersistenceError{Op: "mkdir", Err: err}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	// WAL mode so CLI reads do not block the scan writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "set WAL mode", Err: err}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "migrate", Err: err}
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS score_records (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_at        INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			name            TEXT,
			strategy        TEXT NOT NULL,
			strategy_rank   INTEGER,
			price           REAL,
			change_pct      REAL,
			turnover        REAL,
			volume_ratio    REAL,
			sector          TEXT,
			volume_score    REAL,
			trend_score     REAL,
			pattern_score   REAL,
			sentiment_score REAL,
			composite       REAL,
			cap_applied     INTEGER,
			recommendation  TEXT,
			rationale       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_cycle ON score_records(cycle_at)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_symbol ON score_records(symbol)`,

		`CREATE TABLE IF NOT EXISTS streaks (
			symbol    TEXT PRIMARY KEY,
			count     INTEGER NOT NULL,
			last_seen INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS account (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			cash       REAL NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS positions (
			symbol     TEXT PRIMARY KEY,
			name       TEXT,
			shares     REAL NOT NULL,
			cost_basis REAL NOT NULL,
			invested   REAL NOT NULL,
			opened_at  INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			tx_type  TEXT NOT NULL,
			symbol   TEXT NOT NULL,
			name     TEXT,
			shares   REAL,
			price    REAL,
			amount   REAL,
			at       INTEGER NOT NULL,
			reason   TEXT,
			strategy TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// LoadAccount restores the persisted account with its open positions.
// Returns nil when the database has never seen a commit.
func (s *SQLiteStore) LoadAccount() (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cash float64
	var created, updated int64
	err := s.db.QueryRow(`SELECT cash, created_at, updated_at FROM account WHERE id = 1`).
		Scan(&cash, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load account", Err: err}
	}

	acct := &model.Account{
		Cash:      cash,
		Positions: make(map[string]model.Position),
		CreatedAt: time.Unix(created, 0),
		UpdatedAt: time.Unix(updated, 0),
	}

	rows, err := s.db.Query(`SELECT symbol, name, shares, cost_basis, invested, opened_at FROM positions`)
	if err != nil {
		return nil, &PersistenceError{Op: "load positions", Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Position
		var opened int64
		if err := rows.Scan(&p.Symbol, &p.Name, &p.Shares, &p.CostBasis, &p.Invested, &opened); err != nil {
			return nil, &PersistenceError{Op: "scan position", Err: err}
		}
		p.OpenedAt = time.Unix(opened, 0)
		acct.Positions[p.Symbol] = p
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load positions", Err: err}
	}
	return acct, nil
}

func (s *SQLiteStore) LoadStreaks() ([]model.StreakState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol, count, last_seen FROM streaks ORDER BY symbol`)
	if err != nil {
		return nil, &PersistenceError{Op: "load streaks", Err: err}
	}
	defer rows.Close()

	var states []model.StreakState
	for rows.Next() {
		var st model.StreakState
		var seen int64
		if err := rows.Scan(&st.Symbol, &st.Count, &seen); err != nil {
			return nil, &PersistenceError{Op: "scan streak", Err: err}
		}
		st.LastSeen = time.Unix(seen, 0)
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load streaks", Err: err}
	}
	return states, nil
}

// CommitCycle writes one cycle's output in a single transaction. Streaks
// and positions are replaced wholesale; scores and fills append.
func (s *SQLiteStore) CommitCycle(res *CycleResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return &PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	cycleAt := res.CycleAt.Unix()
	for _, r := range res.Scores {
		_, err := tx.Exec(`INSERT INTO score_records
			(cycle_at, symbol, name, strategy, strategy_rank, price, change_pct, turnover,
			 volume_ratio, sector, volume_score, trend_score, pattern_score,
			 sentiment_score, composite, cap_applied, recommendation, rationale)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cycleAt, r.Symbol, r.Name, string(r.Strategy), r.Rank, r.Price,
			r.ChangePct, r.Turnover, r.VolumeRatio, r.Sector,
			r.Components.Volume, r.Components.Trend, r.Components.Pattern,
			r.Components.Sentiment, r.Composite, boolToInt(r.CapApplied),
			string(r.Recommendation), nullable(r.Rationale))
		if err != nil {
			return &PersistenceError{Op: "insert score", Err: err}
		}
	}

	if _, err := tx.Exec(`DELETE FROM streaks`); err != nil {
		return &PersistenceError{Op: "clear streaks", Err: err}
	}
	for _, st := range res.Streaks {
		if _, err := tx.Exec(`INSERT INTO streaks (symbol, count, last_seen) VALUES (?, ?, ?)`,
			st.Symbol, st.Count, st.LastSeen.Unix()); err != nil {
			return &PersistenceError{Op: "insert streak", Err: err}
		}
	}

	if _, err := tx.Exec(`INSERT INTO account (id, cash, created_at, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET cash = excluded.cash, updated_at = excluded.updated_at`,
		res.Account.Cash, res.Account.CreatedAt.Unix(), res.Account.UpdatedAt.Unix()); err != nil {
		return &PersistenceError{Op: "upsert account", Err: err}
	}

	if _, err := tx.Exec(`DELETE FROM positions`); err != nil {
		return &PersistenceError{Op: "clear positions", Err: err}
	}
	for _, p := range res.Account.Positions {
		if _, err := tx.Exec(`INSERT INTO positions
			(symbol, name, shares, cost_basis, invested, opened_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.Symbol, p.Name, p.Shares, p.CostBasis, p.Invested, p.OpenedAt.Unix()); err != nil {
			return &PersistenceError{Op: "insert position", Err: err}
		}
	}

	for _, t := range res.Transactions {
		if _, err := tx.Exec(`INSERT INTO transactions
			(tx_type, symbol, name, shares, price, amount, at, reason, strategy)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Type, t.Symbol, t.Name, t.Shares, t.Price, t.Amount,
			t.At.Unix(), t.Reason, string(t.Strategy)); err != nil {
			return &PersistenceError{Op: "insert transaction", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

// RecentScores returns the newest records first, capped at limit.
func (s *SQLiteStore) RecentScores(limit int) ([]model.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT cycle_at, symbol, name, strategy, strategy_rank, price,
			change_pct, turnover, volume_ratio, sector, volume_score, trend_score,
			pattern_score, sentiment_score, composite, cap_applied, recommendation,
			COALESCE(rationale, '')
		FROM score_records ORDER BY cycle_at DESC, composite DESC LIMIT ?`, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "query scores", Err: err}
	}
	defer rows.Close()

	var records []model.ScoreRecord
	for rows.Next() {
		var r model.ScoreRecord
		var cycleAt int64
		var capApplied int
		var strategy, recommendation string
		if err := rows.Scan(&cycleAt, &r.Symbol, &r.Name, &strategy, &r.Rank,
			&r.Price, &r.ChangePct, &r.Turnover, &r.VolumeRatio, &r.Sector,
			&r.Components.Volume, &r.Components.Trend, &r.Components.Pattern,
			&r.Components.Sentiment, &r.Composite, &capApplied,
			&recommendation, &r.Rationale); err != nil {
			return nil, &PersistenceError{Op: "scan score", Err: err}
		}
		r.CycleAt = time.Unix(cycleAt, 0)
		r.Strategy = model.Strategy(strategy)
		r.CapApplied = capApplied != 0
		r.Recommendation = model.Recommendation(recommendation)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "query scores", Err: err}
	}
	return records, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
