package feed

import (
	"context"
	"fmt"

	"AShareSentinel/internal/model"
)

// FeedError marks a transient market-data failure. A cycle hitting one
// aborts without mutating state and retries on the next schedule.
type FeedError struct {
	Op  string
	Err error
}

func (e *FeedError) Error() string { return fmt.Sprintf("feed: %s: %v", e.Op, e.Err) }
func (e *FeedError) Unwrap() error { return e.Err }

// Fetcher defines the interface for the external market-data collaborator.
type Fetcher interface {
	// FetchSnapshot returns a point-in-time capture of the whole universe.
	FetchSnapshot(ctx context.Context) (*model.Snapshot, error)
	// FetchDailyBars returns up to `days` recent daily bars for one symbol,
	// oldest first. Used only for per-candidate enrichment.
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
