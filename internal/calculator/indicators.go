package calculator

import (
	"errors"
	"log"

	"AShareSentinel/internal/model"
)

// BuildIndicators derives the scoring inputs from a candidate's daily bars.
// Individual indicator failures degrade to neutral zero values rather than
// failing the candidate; only an empty series is an error.
func BuildIndicators(symbol string, bars []model.OHLCV) (*model.TickerIndicators, error) {
	if len(bars) == 0 {
		return nil, errors.New("no daily bars provided")
	}

	ind := &model.TickerIndicators{Pattern: model.PatternNone}

	for _, ma := range []struct {
		period int
		dst    *float64
	}{
		{5, &ind.MA5},
		{10, &ind.MA10},
		{20, &ind.MA20},
		{60, &ind.MA60},
		{250, &ind.MA250},
	} {
		v, err := CloseMA(bars, ma.period)
		if err != nil {
			// Young listings legitimately lack the longer windows.
			continue
		}
		*ma.dst = v
	}

	if shrinking, err := IsShrinkingVolume(bars); err != nil {
		log.Printf("[WARN] volume state for %s: %v", symbol, err)
	} else {
		ind.ShrinkingVolume = shrinking
	}

	if pattern, err := ClassifyPattern(bars); err != nil {
		log.Printf("[WARN] pattern for %s: %v", symbol, err)
	} else {
		ind.Pattern = pattern
	}

	return ind, nil
}
