package advisory

import (
	"context"
	"fmt"

	"AShareSentinel/internal/model"
)

// AdvisoryError wraps failures from the language-model backend. Advisory
// text is best-effort: callers log these and keep the cycle going.
type AdvisoryError struct {
	Op  string
	Err error
}

func (e *AdvisoryError) Error() string {
	return fmt.Sprintf("advisory %s: %v", e.Op, e.Err)
}

func (e *AdvisoryError) Unwrap() error { return e.Err }

// Advisor produces a short natural-language rationale for a scored
// candidate. Implementations must respect the context deadline.
type Advisor interface {
	Explain(ctx context.Context, c model.Candidate, comp model.ComponentScores, composite float64) (string, error)
	Name() string
}

// NoopAdvisor is used when no API key is configured. Every explanation is
// empty and scoring proceeds without rationale text.
type NoopAdvisor struct{}

func (NoopAdvisor) Explain(context.Context, model.Candidate, model.ComponentScores, float64) (string, error) {
	return "", nil
}

func (NoopAdvisor) Name() string { return "noop" }
