package model

// Strategy identifies which scanner produced a candidate.
type Strategy string

const (
	StrategyMainForce    Strategy = "MAIN_FORCE"    // 强势中军/主升浪
	StrategyLimitAssault Strategy = "LIMIT_ASSAULT" // 冲击涨停/20cm博弈
	StrategyAccumulation Strategy = "ACCUMULATION"  // 低位潜伏
)

// Label returns the display name used in reports and alerts.
func (s Strategy) Label() string {
	switch s {
	case StrategyMainForce:
		return "强势中军"
	case StrategyLimitAssault:
		return "冲击涨停"
	case StrategyAccumulation:
		return "低位潜伏"
	}
	return string(s)
}

// Candidate is a ticker that passed a strategy filter in one cycle.
// Quote fields are copied at filter time so later stages never re-read
// a superseded snapshot.
type Candidate struct {
	Strategy Strategy
	Rank     int // 1-based position within the strategy's ranked list
	Quote
}
