package calculator

import (
	"errors"
	"math"

	"AShareSentinel/internal/model"
)

const breakoutLookback = 20

// ClassifyPattern inspects the most recent bar against its recent history.
// A close above the prior 20-day high, or an up bar reclaiming the prior
// down bar's high, counts as reversal-or-breakout; a dominant upper shadow
// counts as long-upper-shadow. Everything else is neutral.
func ClassifyPattern(bars []model.OHLCV) (model.PatternType, error) {
	if len(bars) < 2 {
		return model.PatternNone, errors.New("not enough bars for pattern classification")
	}
	last := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	// Long upper shadow takes priority: it signals rejection at the high
	// even when the close still cleared resistance.
	body := math.Abs(last.Close - last.Open)
	upper := last.High - math.Max(last.Open, last.Close)
	full := last.High - last.Low
	if full > 0 && upper >= 2*body && upper/full >= 0.4 {
		return model.PatternLongUpperShadow, nil
	}

	// Breakout: close above the highest high of the prior lookback window.
	n := len(bars) - 1
	start := n - breakoutLookback
	if start < 0 {
		start = 0
	}
	priorHigh := math.Inf(-1)
	for i := start; i < n; i++ {
		if bars[i].High > priorHigh {
			priorHigh = bars[i].High
		}
	}
	if last.Close > priorHigh {
		return model.PatternReversalBreak, nil
	}

	// Reversal: up bar reclaiming the prior down bar's high.
	if prev.Close < prev.Open && last.Close > last.Open && last.Close > prev.High {
		return model.PatternReversalBreak, nil
	}

	return model.PatternNone, nil
}
