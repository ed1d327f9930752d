package feed

import (
	"context"
	"log"
	"sync"
	"time"

	"AShareSentinel/internal/model"
)

// SnapshotCache holds the latest Snapshot for a TTL window, shielding the
// pipeline from redundant feed calls. Only one refresh is ever in flight:
// readers arriving during a refresh get the still-valid stale snapshot when
// one exists, otherwise they block on the single in-flight refresh.
type SnapshotCache struct {
	fetcher Fetcher
	ttl     time.Duration

	mu        sync.RWMutex // guards snap
	snap      *model.Snapshot
	refreshMu sync.Mutex // serializes refresh; never held while serving reads
}

// NewSnapshotCache creates a cache over the given fetcher.
func NewSnapshotCache(fetcher Fetcher, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{fetcher: fetcher, ttl: ttl}
}

// Get returns a fresh-enough snapshot, refreshing at most once across all
// concurrent callers. A failed refresh serves the stale snapshot if one
// exists and returns a FeedError otherwise.
func (c *SnapshotCache) Get(ctx context.Context) (*model.Snapshot, error) {
	if snap := c.cached(); snap != nil && c.fresh(snap) {
		return snap, nil
	}

	// Expired (or empty). Serve stale to callers that lose the refresh
	// race instead of stacking them behind the network call.
	if !c.refreshMu.TryLock() {
		if snap := c.cached(); snap != nil {
			return snap, nil
		}
		// No stale value to serve; wait for the in-flight refresh.
		c.refreshMu.Lock()
	}
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if snap := c.cached(); snap != nil && c.fresh(snap) {
		return snap, nil
	}

	snap, err := c.fetcher.FetchSnapshot(ctx)
	if err != nil {
		if stale := c.cached(); stale != nil {
			log.Printf("[WARN] snapshot refresh failed, serving stale data from %s: %v",
				stale.FetchedAt.Format("15:04:05"), err)
			return stale, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return snap, nil
}

// Invalidate drops the cached snapshot, forcing the next Get to refresh.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *SnapshotCache) cached() *model.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func (c *SnapshotCache) fresh(snap *model.Snapshot) bool {
	return time.Since(snap.FetchedAt) < c.ttl
}
