// Package policy holds the pure decision logic applied after each recorded
// violation: when a session must be force-terminated and how risky it is.
package policy

// DefaultThreshold is the violation count that forces termination when no
// override is configured.
const DefaultThreshold = 5

// Risk levels, ordered by severity.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Engine decides auto-termination from accumulated violation counts.
type Engine struct {
	Threshold int
}

// NewEngine creates a policy engine. Non-positive thresholds fall back to
// DefaultThreshold.
func NewEngine(threshold int) Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Engine{Threshold: threshold}
}

// ShouldTerminate reports whether a session with the given violation count
// must be terminated. The caller is responsible for applying it at most once
// per session.
func (e Engine) ShouldTerminate(count int) bool {
	return count >= e.Threshold
}

// RiskLevel classifies a violation count into a risk band. Pure step
// function: 0 low, 1-2 medium, 3-4 high, 5+ critical.
func RiskLevel(count int) string {
	switch {
	case count >= 5:
		return RiskCritical
	case count >= 3:
		return RiskHigh
	case count >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
