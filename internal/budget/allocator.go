package budget

import (
	"fmt"

	"github.com/shopspring/decimal"

	"budgetd/internal/model"
)

var cents = decimal.NewFromInt(100)

// Settings controls allocation behavior. Zero values are filled from
// DefaultSettings by NewAllocator.
type Settings struct {
	// WeekendMultiplier boosts the flexible allocation on Saturdays and
	// Sundays. Must be >= 1.
	WeekendMultiplier decimal.Decimal
	// MonthlyOverrunTolerance bounds how far weekend boosts may push the
	// month total past the flexible budget, as a fraction (0.30 = 30%).
	MonthlyOverrunTolerance decimal.Decimal
	// DefaultMonthlyIncome substitutes for missing or non-positive
	// income so a plan is never all zeros.
	DefaultMonthlyIncome decimal.Decimal
	Currency             string
}

// DefaultSettings returns the stock allocation settings.
func DefaultSettings() Settings {
	return Settings{
		WeekendMultiplier:       decimal.RequireFromString("1.5"),
		MonthlyOverrunTolerance: decimal.RequireFromString("0.30"),
		DefaultMonthlyIncome:    decimal.NewFromInt(3500),
		Currency:                "USD",
	}
}

// DayAttributes describes the day being allocated.
type DayAttributes struct {
	DayOfMonth  int
	DaysInMonth int
	Weekend     bool
}

// Allocator splits a day's flexible budget across categories using
// tier-dependent weights.
type Allocator struct {
	settings Settings
	weights  map[model.Tier]Weights
}

// NewAllocator builds an allocator, validating every tier weight table
// up front.
func NewAllocator(settings Settings) (*Allocator, error) {
	def := DefaultSettings()
	if settings.WeekendMultiplier.IsZero() {
		settings.WeekendMultiplier = def.WeekendMultiplier
	}
	if settings.MonthlyOverrunTolerance.IsZero() {
		settings.MonthlyOverrunTolerance = def.MonthlyOverrunTolerance
	}
	if settings.DefaultMonthlyIncome.IsZero() {
		settings.DefaultMonthlyIncome = def.DefaultMonthlyIncome
	}
	if settings.Currency == "" {
		settings.Currency = def.Currency
	}

	if settings.WeekendMultiplier.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("allocator: weekend multiplier %s < 1", settings.WeekendMultiplier)
	}

	for tier, w := range tierWeights {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("allocator: tier %s: %w", tier, err)
		}
	}

	return &Allocator{settings: settings, weights: tierWeights}, nil
}

// Settings returns the effective settings after default filling.
func (a *Allocator) Settings() Settings {
	return a.settings
}

// WeightsFor returns the weight table backing a tier.
func (a *Allocator) WeightsFor(tier model.Tier) Weights {
	if w, ok := a.weights[tier]; ok {
		return w
	}
	return a.weights[model.TierMiddle]
}

// Allocate computes one day's planned amount per category, in integer
// minor units.
//
// Each category amount is monthly * weight / daysInMonth, boosted by
// the weekend multiplier on weekends, rounded half-up to a cent.
// Every category with a positive weight gets at least one cent, which
// takes priority over exact proportionality at near-zero budgets. The
// rounded category sum may drift from the unrounded day total by up to
// one cent per category.
func (a *Allocator) Allocate(monthly decimal.Decimal, tier model.Tier, day DayAttributes) map[string]int64 {
	monthly = a.effectiveIncome(monthly)
	days := day.DaysInMonth
	if days <= 0 {
		days = 30
	}
	daysDec := decimal.NewFromInt(int64(days))

	out := make(map[string]int64, len(Categories))
	for _, category := range Categories {
		weight, ok := a.WeightsFor(tier)[category]
		if !ok || weight.Sign() <= 0 {
			continue
		}
		daily := monthly.Mul(weight).Div(daysDec)
		if day.Weekend {
			daily = daily.Mul(a.settings.WeekendMultiplier)
		}
		amount := daily.Mul(cents).Round(0).IntPart()
		if amount < 1 {
			amount = 1
		}
		out[category] = amount
	}
	return out
}

// DayBudgetCents returns the day's total flexible budget in minor
// units, before the per-category split.
func (a *Allocator) DayBudgetCents(monthly decimal.Decimal, tier model.Tier, day DayAttributes) int64 {
	monthly = a.effectiveIncome(monthly)
	days := day.DaysInMonth
	if days <= 0 {
		days = 30
	}
	total := monthly.Mul(a.WeightsFor(tier).FlexibleShare()).Div(decimal.NewFromInt(int64(days)))
	if day.Weekend {
		total = total.Mul(a.settings.WeekendMultiplier)
	}
	return total.Mul(cents).Round(0).IntPart()
}

// MonthlyBudgetCents returns the uncapped monthly flexible budget in
// minor units.
func (a *Allocator) MonthlyBudgetCents(monthly decimal.Decimal, tier model.Tier) int64 {
	monthly = a.effectiveIncome(monthly)
	return monthly.Mul(a.WeightsFor(tier).FlexibleShare()).Mul(cents).Round(0).IntPart()
}

func (a *Allocator) effectiveIncome(monthly decimal.Decimal) decimal.Decimal {
	if monthly.Sign() <= 0 {
		return a.settings.DefaultMonthlyIncome
	}
	return monthly
}
