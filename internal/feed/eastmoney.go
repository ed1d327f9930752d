package feed

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"AShareSentinel/internal/model"
)

const (
	listPageSize = 100
	listMaxPages = 60 // ~6000 tickers covers the A-share universe
)

// EastmoneyFetcher implements Fetcher against the Eastmoney push2 REST API.
type EastmoneyFetcher struct {
	baseURL string
	client  *resty.Client
}

// NewEastmoneyFetcher creates a fetcher with optional proxy support.
func NewEastmoneyFetcher(baseURL string, timeout time.Duration, proxyURL string) *EastmoneyFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		SetHeader("User-Agent", "AShareSentinel/1.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &EastmoneyFetcher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (f *EastmoneyFetcher) Name() string { return "eastmoney" }

// emListResponse is the push2 clist payload. Field codes:
// f2 price, f3 change pct, f8 turnover, f10 volume ratio,
// f12 symbol, f14 name, f21 circulating market cap, f100 sector.
type emListResponse struct {
	Data *struct {
		Total int `json:"total"`
		Diff  []struct {
			Price       float64 `json:"f2"`
			ChangePct   float64 `json:"f3"`
			Turnover    float64 `json:"f8"`
			VolumeRatio float64 `json:"f10"`
			Symbol      string  `json:"f12"`
			Name        string  `json:"f14"`
			CircMktCap  float64 `json:"f21"`
			Sector      string  `json:"f100"`
		} `json:"diff"`
	} `json:"data"`
}

// FetchSnapshot pages through the full A-share list. ST and suspended
// tickers are dropped at the source so strategies never see them.
func (f *EastmoneyFetcher) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var quotes []model.Quote
	for page := 1; page <= listMaxPages; page++ {
		var result emListResponse
		resp, err := f.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"pn":     strconv.Itoa(page),
				"pz":     strconv.Itoa(listPageSize),
				"po":     "1",
				"fltt":   "2",
				"fs":     "m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23",
				"fields": "f2,f3,f8,f10,f12,f14,f21,f100",
			}).
			SetResult(&result).
			Get(f.baseURL + "/api/qt/clist/get")
		if err != nil {
			return nil, &FeedError{Op: "fetch snapshot", Err: err}
		}
		if resp.StatusCode() != 200 {
			return nil, &FeedError{Op: "fetch snapshot", Err: fmt.Errorf("status %d", resp.StatusCode())}
		}
		if result.Data == nil || len(result.Data.Diff) == 0 {
			break
		}
		for _, d := range result.Data.Diff {
			if isSTName(d.Name) || d.Price <= 0 {
				continue
			}
			quotes = append(quotes, model.Quote{
				Symbol:      d.Symbol,
				Name:        d.Name,
				Price:       d.Price,
				ChangePct:   d.ChangePct,
				Turnover:    d.Turnover,
				VolumeRatio: d.VolumeRatio,
				CircMktCap:  d.CircMktCap,
				Sector:      d.Sector,
			})
		}
		if len(quotes) >= result.Data.Total {
			break
		}
	}
	if len(quotes) == 0 {
		return nil, &FeedError{Op: "fetch snapshot", Err: fmt.Errorf("empty universe")}
	}
	return &model.Snapshot{Quotes: quotes, FetchedAt: time.Now()}, nil
}

// emKlineResponse is the push2 kline payload; klines are comma-joined
// "date,open,close,high,low,volume,..." strings.
type emKlineResponse struct {
	Data *struct {
		Klines []string `json:"klines"`
	} `json:"data"`
}

// FetchDailyBars fetches recent daily candles for one symbol.
func (f *EastmoneyFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	var result emKlineResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"secid":  secID(symbol),
			"klt":    "101", // daily
			"fqt":    "1",   // forward adjusted
			"lmt":    strconv.Itoa(days),
			"end":    "20500101",
			"fields": "f51,f52,f53,f54,f55,f56",
		}).
		SetResult(&result).
		Get(f.baseURL + "/api/qt/stock/kline/get")
	if err != nil {
		return nil, &FeedError{Op: "fetch daily bars " + symbol, Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &FeedError{Op: "fetch daily bars " + symbol, Err: fmt.Errorf("status %d", resp.StatusCode())}
	}
	if result.Data == nil {
		return nil, &FeedError{Op: "fetch daily bars " + symbol, Err: fmt.Errorf("no kline data")}
	}

	bars := make([]model.OHLCV, 0, len(result.Data.Klines))
	for _, line := range result.Data.Klines {
		parts := strings.Split(line, ",")
		if len(parts) < 6 {
			continue
		}
		t, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			continue
		}
		open, _ := strconv.ParseFloat(parts[1], 64)
		cls, _ := strconv.ParseFloat(parts[2], 64)
		high, _ := strconv.ParseFloat(parts[3], 64)
		low, _ := strconv.ParseFloat(parts[4], 64)
		vol, _ := strconv.ParseFloat(parts[5], 64)
		bars = append(bars, model.OHLCV{Time: t, Open: open, High: high, Low: low, Close: cls, Volume: vol})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// secID maps a bare symbol to the market-prefixed id the kline API expects.
func secID(symbol string) string {
	if strings.HasPrefix(symbol, "6") {
		return "1." + symbol // Shanghai
	}
	return "0." + symbol // Shenzhen / ChiNext / BSE
}

func isSTName(name string) bool {
	return strings.Contains(name, "ST") || strings.Contains(name, "st") || strings.Contains(name, "退")
}
