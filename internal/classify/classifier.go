package classify

import (
	"github.com/shopspring/decimal"

	"budgetd/internal/model"
)

var monthsPerYear = decimal.NewFromInt(12)

// Classify maps a monthly income and location onto an income tier.
// It never fails: unknown locations fall back through Lookup, and
// non-positive income classifies as low.
//
// The monthly-to-annual conversion and all comparisons run in decimal
// so an income landing exactly on a boundary never flips tiers through
// float rounding. Boundaries are inclusive upper bounds: annual income
// equal to a boundary belongs to the tier below it.
func (t *Table) Classify(monthly decimal.Decimal, country, subregion string) model.Tier {
	if monthly.Sign() <= 0 {
		return model.TierLow
	}

	annual := monthly.Mul(monthsPerYear)
	th := t.Lookup(country, subregion)

	for i, bound := range th.Boundaries {
		if annual.LessThanOrEqual(decimal.NewFromInt(bound)) {
			if i < len(model.Tiers) {
				return model.Tiers[i]
			}
			break
		}
	}
	return model.TierHigh
}

// ClassifyProfile classifies using the income and location carried by a
// user profile.
func (t *Table) ClassifyProfile(p model.UserFinancialProfile) model.Tier {
	return t.Classify(p.MonthlyIncome, p.CountryCode, p.SubregionCode)
}
