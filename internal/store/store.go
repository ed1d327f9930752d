package store

import (
	"fmt"
	"time"

	"AShareSentinel/internal/model"
)

// PersistenceError wraps storage failures. The engine treats a failed
// commit as a failed cycle: no in-memory state is adopted.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// CycleResult is everything one completed cycle produced. CommitCycle
// persists it atomically: either all of it lands or none of it does.
type CycleResult struct {
	CycleAt      time.Time
	Scores       []model.ScoreRecord
	Streaks      []model.StreakState
	Account      model.Account
	Transactions []model.Transaction
}

// Store persists cycle results and restores state on startup.
type Store interface {
	// LoadAccount returns the persisted account, or nil when none exists yet.
	LoadAccount() (*model.Account, error)
	LoadStreaks() ([]model.StreakState, error)
	CommitCycle(res *CycleResult) error
	RecentScores(limit int) ([]model.ScoreRecord, error)
	Close() error
}
