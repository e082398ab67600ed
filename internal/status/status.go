// Package status classifies bin fill levels into the three operational
// states used across the API.
package status

// Status is the derived operational state of a bin.
type Status string

const (
	Good     Status = "good"
	Warning  Status = "warning"
	Critical Status = "critical"
)

// Policy holds the percentage thresholds separating the states. The same
// policy instance must be used for every computation in a deployment.
type Policy struct {
	CriticalPercent int
	WarningPercent  int
}

// DefaultPolicy matches the write-time classification used by the API.
var DefaultPolicy = Policy{CriticalPercent: 90, WarningPercent: 70}

// Compute returns the status for a fill level relative to capacity.
// It is a pure function: callers must never store its result independently
// of the fill level it was computed from.
func (p Policy) Compute(fillLevel, capacity int) Status {
	if capacity <= 0 {
		capacity = 100
	}
	pct := fillLevel * 100 / capacity
	switch {
	case pct > p.CriticalPercent:
		return Critical
	case pct > p.WarningPercent:
		return Warning
	default:
		return Good
	}
}
