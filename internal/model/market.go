package model

import "time"

// Quote is a single ticker's point-in-time reading from the feed.
type Quote struct {
	Symbol      string
	Name        string
	Price       float64
	ChangePct   float64 // percent change, e.g. 6.5 means +6.5%
	Turnover    float64 // turnover rate in percent
	VolumeRatio float64
	CircMktCap  float64 // circulating market cap in yuan
	Sector      string
}

// Snapshot is an immutable full-market capture. It is superseded wholesale
// by the next refresh and never mutated after creation.
type Snapshot struct {
	Quotes    []Quote
	FetchedAt time.Time
}

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
