// Package model defines domain types for budget plans, profiles, and tiers.
package model

// Tier is an income bracket used for peer comparison and weight selection.
type Tier string

const (
	TierLow         Tier = "low"
	TierLowerMiddle Tier = "lower_middle"
	TierMiddle      Tier = "middle"
	TierUpperMiddle Tier = "upper_middle"
	TierHigh        Tier = "high"
)

// Tiers lists all tiers in ascending income order.
var Tiers = []Tier{TierLow, TierLowerMiddle, TierMiddle, TierUpperMiddle, TierHigh}

// Label returns a human-readable tier name for CLI output.
func (t Tier) Label() string {
	switch t {
	case TierLow:
		return "Low"
	case TierLowerMiddle:
		return "Lower middle"
	case TierMiddle:
		return "Middle"
	case TierUpperMiddle:
		return "Upper middle"
	case TierHigh:
		return "High"
	}
	return string(t)
}
