package model

// PatternType classifies the most recent candle shape.
type PatternType string

const (
	PatternNone            PatternType = "NONE"
	PatternReversalBreak   PatternType = "REVERSAL_BREAKOUT"
	PatternLongUpperShadow PatternType = "LONG_UPPER_SHADOW"
)

// SectorHeat grades the candidate's sector against the current snapshot.
type SectorHeat string

const (
	HeatMainstream SectorHeat = "MAINSTREAM"
	HeatFollowOn   SectorHeat = "FOLLOW_ON"
	HeatIsolated   SectorHeat = "ISOLATED"
)

// TickerIndicators holds the per-candidate inputs the scoring rubric needs
// beyond the raw quote. Zero values degrade to neutral scores.
type TickerIndicators struct {
	MA5             float64
	MA10            float64
	MA20            float64
	MA60            float64
	MA250           float64
	ShrinkingVolume bool
	Pattern         PatternType
	SectorHeat      SectorHeat
}
