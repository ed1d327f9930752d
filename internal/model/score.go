package model

import "time"

// Recommendation is the discrete tier derived from the composite score.
type Recommendation string

const (
	RecommendStrong  Recommendation = "重点关注"
	RecommendWatch   Recommendation = "观察"
	RecommendObserve Recommendation = "仅观望"
)

// ComponentScores holds the four sub-scores of the rubric.
type ComponentScores struct {
	Volume    float64 // 0-40
	Trend     float64 // 0-30
	Pattern   float64 // 0-20
	Sentiment float64 // 0-10
}

// Sum returns the raw component total before clamping.
func (c ComponentScores) Sum() float64 {
	return c.Volume + c.Trend + c.Pattern + c.Sentiment
}

// ScoreRecord is the immutable result of scoring one candidate in one cycle.
// Rationale is best-effort advisory text and may be empty.
type ScoreRecord struct {
	Symbol         string
	Name           string
	Strategy       Strategy
	Rank           int
	CycleAt        time.Time
	Price          float64
	ChangePct      float64
	Turnover       float64
	VolumeRatio    float64
	Sector         string
	Components     ComponentScores
	Composite      float64
	CapApplied     bool // shrinking-volume ceiling was triggered
	Recommendation Recommendation
	Rationale      string
}
