package feed

import (
	"context"
	"sync"
	"time"

	"AShareSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu        sync.Mutex
	Quotes    []model.Quote
	Bars      map[string][]model.OHLCV
	Err       error
	snapCalls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSnapshot(_ context.Context) (*model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapCalls++
	if m.Err != nil {
		return nil, &FeedError{Op: "fetch snapshot", Err: m.Err}
	}
	quotes := make([]model.Quote, len(m.Quotes))
	copy(quotes, m.Quotes)
	return &model.Snapshot{Quotes: quotes, FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.OHLCV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, &FeedError{Op: "fetch daily bars " + symbol, Err: m.Err}
	}
	bars := m.Bars[symbol]
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// SnapshotCalls reports how many times FetchSnapshot was invoked.
func (m *MockFetcher) SnapshotCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapCalls
}
