package model

import "github.com/shopspring/decimal"

// UserFinancialProfile is the caller-owned income and location snapshot
// used for classification and allocation. Passed by value; never mutated
// by the planning core.
type UserFinancialProfile struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	CountryCode   string          `json:"country_code"`
	SubregionCode string          `json:"subregion_code,omitempty"`
	HasOnboarded  bool            `json:"has_onboarded"`
}
