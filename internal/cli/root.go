// Package cli wires the projection engine into the compass command line tool.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/compass/financial-planner/internal/cache"
	"github.com/compass/financial-planner/internal/calculation"
)

var (
	flagProfile string
	flagFormat  string
	flagYears   int
	flagSims    int
	flagRedis   string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Household financial projection engine",
	Long: "Project a household's financial trajectory: Monte Carlo investment growth,\n" +
		"goal success rates, and avalanche-vs-snowball debt payoff comparison.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "console", "Output format (console, json)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// newEngine builds a projection engine honoring the global flags.
func newEngine() (*calculation.ProjectionEngine, error) {
	engine := calculation.NewProjectionEngine(calculation.DefaultReturnModel())
	if flagVerbose {
		engine.SetLogger(stderrLogger{})
	}
	if flagRedis != "" {
		rdb := cache.NewRedis(flagRedis, 24*time.Hour)
		if err := rdb.Ping(); err != nil {
			return nil, fmt.Errorf("cannot reach redis at %s: %w", flagRedis, err)
		}
		engine.Cache = rdb
	}
	return engine, nil
}

// stderrLogger writes engine traces to stderr.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { fmt.Fprintf(os.Stderr, "DEBUG "+format+"\n", args...) }
func (stderrLogger) Infof(format string, args ...any)  { fmt.Fprintf(os.Stderr, "INFO  "+format+"\n", args...) }
func (stderrLogger) Warnf(format string, args ...any)  { fmt.Fprintf(os.Stderr, "WARN  "+format+"\n", args...) }
func (stderrLogger) Errorf(format string, args ...any) { fmt.Fprintf(os.Stderr, "ERROR "+format+"\n", args...) }
