package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/compass/financial-planner/internal/calculation"
	"github.com/compass/financial-planner/internal/domain"
)

var (
	flagBalance      float64
	flagContribution float64
	flagRisk         string
	flagTarget       float64
	flagInflation    float64
	flagGrowth       float64
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a one-off Monte Carlo investment projection",
	RunE:  runProject,
}

func init() {
	projectCmd.Flags().Float64VarP(&flagBalance, "balance", "b", 0, "Current invested balance")
	projectCmd.Flags().Float64VarP(&flagContribution, "contribution", "c", 0, "Monthly contribution")
	projectCmd.Flags().IntVarP(&flagYears, "years", "y", 30, "Projection horizon in years")
	projectCmd.Flags().StringVarP(&flagRisk, "risk", "r", "moderate", "Risk tolerance (conservative, moderate, aggressive)")
	projectCmd.Flags().Float64VarP(&flagTarget, "target", "t", 0, "Target amount (0 for none)")
	projectCmd.Flags().Float64Var(&flagInflation, "inflation", 0.02, "Annual inflation rate")
	projectCmd.Flags().Float64Var(&flagGrowth, "growth", 0.03, "Annual contribution growth rate")
	projectCmd.Flags().IntVarP(&flagSims, "sims", "n", 5000, "Simulated paths")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	projector := calculation.NewMonteCarloProjector(calculation.DefaultReturnModel())

	input := calculation.ProjectionInput{
		CurrentBalance:         flagBalance,
		MonthlyContribution:    flagContribution,
		Years:                  flagYears,
		Risk:                   domain.RiskTolerance(flagRisk),
		Target:                 flagTarget,
		InflationRate:          flagInflation,
		SimulationCount:        flagSims,
		ContributionGrowthRate: flagGrowth,
	}
	result, err := projector.Project(input)
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
