package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/compass/financial-planner/internal/calculation"
	"github.com/compass/financial-planner/internal/config"
	"github.com/compass/financial-planner/internal/domain"
)

var (
	flagExtra    float64
	flagStrategy string
)

var payoffCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Amortize the profile's debts under one repayment strategy",
	RunE:  runPayoff,
}

func init() {
	payoffCmd.Flags().StringVarP(&flagProfile, "input", "i", "", "Profile YAML file (required)")
	payoffCmd.Flags().Float64VarP(&flagExtra, "extra", "e", 0, "Extra monthly payment on top of minimums")
	payoffCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "avalanche", "Repayment strategy (avalanche, snowball)")
	_ = payoffCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(payoffCmd)
}

func runPayoff(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	profile, err := parser.LoadFromFile(flagProfile)
	if err != nil {
		return err
	}

	amortizer := calculation.NewDebtAmortizer()
	result, err := amortizer.Payoff(profile.Debts, flagExtra, domain.PayoffStrategy(flagStrategy))
	if err != nil {
		return fmt.Errorf("payoff simulation failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
