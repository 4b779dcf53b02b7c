/*
risk.go - Risk classification over configurable thresholds

PURPOSE:
  Maps days-remaining to a discrete risk level. Thresholds are data,
  not control flow: a company-level override shifts the boundaries by
  supplying a different Thresholds value, never by touching this code.
*/
package schengen

// =============================================================================
// THRESHOLDS
// =============================================================================

// Thresholds are the cut points over days-remaining. Green when
// remaining >= GreenMin, amber when remaining >= AmberMin, red below.
// Negative remaining is red; the "breach" refinement lives on Result.
type Thresholds struct {
	GreenMin int `json:"green_min"`
	AmberMin int `json:"amber_min"`
}

// DefaultThresholds returns the standard cut points: green with 30 or
// more days in hand, amber down to 10, red below.
func DefaultThresholds() Thresholds {
	return Thresholds{GreenMin: 30, AmberMin: 10}
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// RiskFor classifies days-remaining against the thresholds.
func RiskFor(daysRemaining int, t Thresholds) RiskLevel {
	switch {
	case daysRemaining >= t.GreenMin:
		return RiskGreen
	case daysRemaining >= t.AmberMin:
		return RiskAmber
	default:
		return RiskRed
	}
}
