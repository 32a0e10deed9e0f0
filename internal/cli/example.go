package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compass/financial-planner/internal/config"
)

var flagOut string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write a starter profile YAML to copy and edit",
	RunE:  runExample,
}

func init() {
	exampleCmd.Flags().StringVarP(&flagOut, "output", "o", "profile.yaml", "Destination file")
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	if err := parser.WriteExampleProfile(flagOut); err != nil {
		return err
	}
	fmt.Printf("Wrote example profile to %s\n", flagOut)
	return nil
}
