package store

import "AShareSentinel/internal/model"

// NoopStore is used for dry runs and when no database path is wanted.
// Nothing is persisted; every cycle starts from scratch.
type NoopStore struct{}

func (NoopStore) LoadAccount() (*model.Account, error)          { return nil, nil }
func (NoopStore) LoadStreaks() ([]model.StreakState, error)     { return nil, nil }
func (NoopStore) CommitCycle(*CycleResult) error                { return nil }
func (NoopStore) RecentScores(int) ([]model.ScoreRecord, error) { return nil, nil }
func (NoopStore) Close() error                                  { return nil }
