package calculator

import (
	"testing"
	"time"

	"AShareSentinel/internal/model"
)

func flatBars(n int, price, volume float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(n - i)),
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: volume,
		}
	}
	return bars
}

func TestCalculateSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got, err := CalculateSMA(values, 5)
	if err != nil {
		t.Fatalf("sma: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %.2f", got)
	}

	if _, err := CalculateSMA(values, 6); err == nil {
		t.Error("expected error for insufficient data")
	}
	if _, err := CalculateSMA(values, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestIsShrinkingVolume(t *testing.T) {
	bars := flatBars(10, 10, 1000)
	bars[len(bars)-1].Volume = 500 // well below 0.8x the 5-day average
	shrinking, err := IsShrinkingVolume(bars)
	if err != nil {
		t.Fatalf("volume state: %v", err)
	}
	if !shrinking {
		t.Error("expected shrinking volume")
	}

	bars[len(bars)-1].Volume = 1000
	shrinking, err = IsShrinkingVolume(bars)
	if err != nil {
		t.Fatalf("volume state: %v", err)
	}
	if shrinking {
		t.Error("flat volume should not count as shrinking")
	}

	if _, err := IsShrinkingVolume(flatBars(3, 10, 1000)); err == nil {
		t.Error("expected error with too few bars")
	}
}

func TestClassifyPattern_Breakout(t *testing.T) {
	bars := flatBars(30, 10, 1000)
	last := &bars[len(bars)-1]
	last.Open = 10
	last.Close = 10.8 // above every prior high (10.1)
	last.High = 10.85
	last.Low = 9.95

	pattern, err := ClassifyPattern(bars)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if pattern != model.PatternReversalBreak {
		t.Errorf("expected breakout, got %s", pattern)
	}
}

func TestClassifyPattern_LongUpperShadow(t *testing.T) {
	bars := flatBars(30, 10, 1000)
	last := &bars[len(bars)-1]
	last.Open = 10
	last.Close = 10.05 // tiny body
	last.High = 10.9   // huge rejected spike
	last.Low = 9.95

	pattern, err := ClassifyPattern(bars)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if pattern != model.PatternLongUpperShadow {
		t.Errorf("expected long upper shadow, got %s", pattern)
	}
}

func TestClassifyPattern_Neutral(t *testing.T) {
	bars := flatBars(30, 10, 1000)
	last := &bars[len(bars)-1]
	last.Open = 9.9
	last.Close = 10.05 // ordinary up bar, shadows small, no breakout
	last.High = 10.08
	last.Low = 9.88

	pattern, err := ClassifyPattern(bars)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if pattern != model.PatternNone {
		t.Errorf("expected neutral pattern, got %s", pattern)
	}
}

func TestBuildIndicators(t *testing.T) {
	bars := flatBars(300, 10, 1000)
	ind, err := BuildIndicators("000001", bars)
	if err != nil {
		t.Fatalf("build indicators: %v", err)
	}
	if ind.MA5 == 0 || ind.MA250 == 0 {
		t.Error("expected all MAs populated for 300 bars")
	}

	// Short history: long MAs stay zero, no error.
	short, err := BuildIndicators("300001", flatBars(30, 10, 1000))
	if err != nil {
		t.Fatalf("build indicators short: %v", err)
	}
	if short.MA20 == 0 {
		t.Error("expected MA20 for 30 bars")
	}
	if short.MA250 != 0 {
		t.Error("expected MA250 to stay zero for 30 bars")
	}

	if _, err := BuildIndicators("x", nil); err == nil {
		t.Error("expected error for empty bars")
	}
}
