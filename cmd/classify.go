package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"budgetd/internal/model"
)

var (
	flagIncome    string
	flagCountry   string
	flagSubregion string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a monthly income into its tier",
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&flagIncome, "income", "", "Monthly income (e.g. 5000 or 5000.50)")
	classifyCmd.Flags().StringVar(&flagCountry, "country", "", "ISO country code (defaults to configured country)")
	classifyCmd.Flags().StringVar(&flagSubregion, "subregion", "", "Subregion code (e.g. CA)")
	_ = classifyCmd.MarkFlagRequired("income")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	income, err := decimal.NewFromString(flagIncome)
	if err != nil {
		return fmt.Errorf("invalid income %q", flagIncome)
	}

	log := newLogger()
	p, cfg, cleanup, err := buildPlanner(log)
	if err != nil {
		return err
	}
	defer cleanup()

	country := flagCountry
	if country == "" {
		country = cfg.General.CountryCode
	}
	subregion := flagSubregion
	if subregion == "" && flagCountry == "" {
		subregion = cfg.General.SubregionCode
	}

	tier := p.ClassifyIncome(model.UserFinancialProfile{
		MonthlyIncome: income,
		CountryCode:   country,
		SubregionCode: subregion,
	})

	fmt.Printf("  Income tier: %s (%s)\n", tier, tier.Label())
	return nil
}
