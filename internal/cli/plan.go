package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/compass/financial-planner/internal/config"
	"github.com/compass/financial-planner/internal/output"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the full projection suite for a profile",
	Long: "Runs the portfolio projection, one projection per goal, and the\n" +
		"avalanche-vs-snowball debt comparison for a household profile.",
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&flagProfile, "input", "i", "", "Profile YAML file (required)")
	planCmd.Flags().IntVarP(&flagYears, "years", "y", 30, "Portfolio projection horizon in years")
	planCmd.Flags().IntVarP(&flagSims, "sims", "n", 3000, "Simulated paths per projection")
	planCmd.Flags().StringVar(&flagRedis, "redis", "", "Redis address for result caching (optional)")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	profile, err := parser.LoadFromFile(flagProfile)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	plan, err := engine.ProjectProfile(profile, flagYears, flagSims)
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	formatter := output.GetFormatterByName(flagFormat)
	if formatter == nil {
		return fmt.Errorf("unknown output format %q", flagFormat)
	}
	data, err := formatter.Format(plan)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
