package calculator

import (
	"errors"

	"AShareSentinel/internal/model"
)

// shrinkRatio: the last bar is "shrinking" when its volume falls below this
// fraction of the 5-day volume average.
const shrinkRatio = 0.8

// IsShrinkingVolume reports whether the most recent bar traded meaningfully
// below its 5-day volume average.
func IsShrinkingVolume(bars []model.OHLCV) (bool, error) {
	if len(bars) < 6 {
		return false, errors.New("not enough bars for volume state")
	}
	// Average excludes the bar being judged.
	avg, err := CalculateSMA(extractVolumes(bars[:len(bars)-1]), 5)
	if err != nil {
		return false, err
	}
	if avg <= 0 {
		return false, errors.New("zero volume average")
	}
	last := bars[len(bars)-1]
	return last.Volume < shrinkRatio*avg, nil
}
