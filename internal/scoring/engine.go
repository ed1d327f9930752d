package scoring

import (
	"AShareSentinel/internal/config"
	"AShareSentinel/internal/model"
)

const (
	compositeMax = 100.0

	// Ceiling applied when volume is shrinking into the move.
	shrinkCompositeCap = 70.0
	shrinkVolumeCap    = 28.0
)

// Engine turns a candidate plus its indicators into component scores and a
// composite. It is deterministic: same inputs, same scores.
type Engine struct {
	strongThreshold float64
	watchThreshold  float64
	capScope        string
}

// Result is one scored candidate before persistence.
type Result struct {
	Components     model.ComponentScores
	Composite      float64
	CapApplied     bool
	Recommendation model.Recommendation
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		strongThreshold: cfg.Scoring.StrongThreshold,
		watchThreshold:  cfg.Scoring.WatchThreshold,
		capScope:        cfg.Scoring.ShrinkCapScope,
	}
}

// Score applies the four-part rubric. A shrinking-volume condition caps the
// result: either the composite is held at 70 or the volume component is held
// at its proportional share, depending on the configured scope.
func (e *Engine) Score(c model.Candidate, ind *model.TickerIndicators) Result {
	if ind == nil {
		ind = &model.TickerIndicators{Pattern: model.PatternNone, SectorHeat: model.HeatIsolated}
	}

	comp := model.ComponentScores{
		Volume:    scoreVolume(c.VolumeRatio, c.Turnover),
		Trend:     scoreTrend(c.Price, ind),
		Pattern:   scorePattern(ind.Pattern),
		Sentiment: scoreSentiment(ind.SectorHeat),
	}

	capApplied := ind.ShrinkingVolume
	if capApplied && e.capScope == config.CapScopeVolume && comp.Volume > shrinkVolumeCap {
		comp.Volume = shrinkVolumeCap
	}

	composite := clamp(comp.Sum(), 0, compositeMax)
	if capApplied && e.capScope == config.CapScopeComposite && composite > shrinkCompositeCap {
		composite = shrinkCompositeCap
	}

	return Result{
		Components:     comp,
		Composite:      composite,
		CapApplied:     capApplied,
		Recommendation: e.recommend(composite),
	}
}

func (e *Engine) recommend(composite float64) model.Recommendation {
	switch {
	case composite >= e.strongThreshold:
		return model.RecommendStrong
	case composite >= e.watchThreshold:
		return model.RecommendWatch
	default:
		return model.RecommendObserve
	}
}

// scoreVolume grades participation from volume ratio and turnover.
// Heavy-volume attack with real turnover lands in the top band.
func scoreVolume(volumeRatio, turnover float64) float64 {
	switch {
	case volumeRatio >= 3.0 && turnover >= 10.0:
		return 40
	case volumeRatio >= 2.5 && turnover >= 8.0:
		return 38
	case volumeRatio >= 2.0 && turnover >= 7.0:
		return 35
	case volumeRatio >= 1.8:
		return 32
	case volumeRatio >= 1.5:
		return 29
	case volumeRatio >= 1.2:
		return 25
	case volumeRatio >= 1.0:
		return 18
	default:
		return 10
	}
}

// scoreTrend grades MA alignment. Missing MAs (zero) degrade the candidate
// to the weaker bands instead of failing it.
func scoreTrend(price float64, ind *model.TickerIndicators) float64 {
	bullish := ind.MA20 > 0 &&
		price > ind.MA5 && ind.MA5 > ind.MA10 && ind.MA10 > ind.MA20

	var score float64
	switch {
	case bullish && ind.MA60 > 0 && price > ind.MA60:
		score = 30
	case bullish:
		score = 27
	case ind.MA60 > 0 && price > ind.MA20 && ind.MA20 > ind.MA60:
		score = 22
	case ind.MA20 > 0 && price > ind.MA20:
		score = 15
	default:
		score = 8
	}

	// Below the annual line the trend claim is suspect.
	if ind.MA250 > 0 && price < ind.MA250 {
		score -= 8
	}
	if score < 0 {
		score = 0
	}
	return score
}

func scorePattern(p model.PatternType) float64 {
	switch p {
	case model.PatternReversalBreak:
		return 15
	case model.PatternLongUpperShadow:
		return 5
	default:
		return 10
	}
}

func scoreSentiment(h model.SectorHeat) float64 {
	switch h {
	case model.HeatMainstream:
		return 9
	case model.HeatFollowOn:
		return 5
	default:
		return 1
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
