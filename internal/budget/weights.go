// Package budget turns income into per-day, per-category spending plans.
package budget

import (
	"fmt"

	"github.com/shopspring/decimal"

	"budgetd/internal/model"
)

// Categories is the closed set of flexible-spend category names.
// Weight tables are validated against this set at load time so a
// misspelled category fails construction instead of silently dropping
// money at allocation time.
var Categories = []string{
	"groceries",
	"dining",
	"transport",
	"entertainment",
	"shopping",
	"personal",
}

// Weights maps category names to income fractions. The sum of weights
// is the flexible share of income; the remainder models fixed
// obligations (rent, debt) outside this engine.
type Weights map[string]decimal.Decimal

// Validate checks category names against the closed set and the
// sum-of-weights invariant.
func (w Weights) Validate() error {
	known := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		known[c] = struct{}{}
	}

	sum := decimal.Zero
	for name, weight := range w {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("weights: unknown category %q", name)
		}
		if weight.Sign() < 0 {
			return fmt.Errorf("weights: category %q has negative weight", name)
		}
		sum = sum.Add(weight)
	}
	if sum.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("weights: sum %s exceeds 1", sum)
	}
	return nil
}

// FlexibleShare returns the summed weight fraction.
func (w Weights) FlexibleShare() decimal.Decimal {
	sum := decimal.Zero
	for _, weight := range w {
		sum = sum.Add(weight)
	}
	return sum
}

func mustWeights(pairs map[string]string) Weights {
	w := make(Weights, len(pairs))
	for name, s := range pairs {
		w[name] = decimal.RequireFromString(s)
	}
	return w
}

// tierWeights holds the per-tier category weight tables. Lower tiers
// weight necessities (groceries, transport) higher; discretionary
// categories grow with income, as does the overall flexible share.
var tierWeights = map[model.Tier]Weights{
	model.TierLow: mustWeights(map[string]string{
		"groceries": "0.18", "dining": "0.04", "transport": "0.08",
		"entertainment": "0.03", "shopping": "0.04", "personal": "0.03",
	}),
	model.TierLowerMiddle: mustWeights(map[string]string{
		"groceries": "0.16", "dining": "0.06", "transport": "0.08",
		"entertainment": "0.04", "shopping": "0.05", "personal": "0.04",
	}),
	model.TierMiddle: mustWeights(map[string]string{
		"groceries": "0.14", "dining": "0.08", "transport": "0.07",
		"entertainment": "0.06", "shopping": "0.07", "personal": "0.05",
	}),
	model.TierUpperMiddle: mustWeights(map[string]string{
		"groceries": "0.12", "dining": "0.09", "transport": "0.07",
		"entertainment": "0.07", "shopping": "0.09", "personal": "0.06",
	}),
	model.TierHigh: mustWeights(map[string]string{
		"groceries": "0.10", "dining": "0.11", "transport": "0.06",
		"entertainment": "0.08", "shopping": "0.11", "personal": "0.07",
	}),
}
