package integration

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compass/financial-planner/internal/cache"
	"github.com/compass/financial-planner/internal/calculation"
	"github.com/compass/financial-planner/internal/config"
	"github.com/compass/financial-planner/internal/domain"
	"github.com/compass/financial-planner/internal/output"
)

// TestPlanEndToEnd exercises the whole pipeline: example profile written to
// disk, loaded and validated, projected, cached, and formatted.
func TestPlanEndToEnd(t *testing.T) {
	parser := config.NewInputParser()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, parser.WriteExampleProfile(path))

	profile, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	engine := calculation.NewProjectionEngine(calculation.DefaultReturnModel())
	engine.Cache = cache.NewMemory()

	plan, err := engine.ProjectProfile(profile, 20, 500)
	require.NoError(t, err)

	// Portfolio: 21 yearly points, ordered bands.
	require.NotNil(t, plan.Portfolio)
	require.Len(t, plan.Portfolio.Years, 21)
	for i := range plan.Portfolio.Years {
		assert.LessOrEqual(t, plan.Portfolio.P10[i], plan.Portfolio.Median[i])
		assert.LessOrEqual(t, plan.Portfolio.Median[i], plan.Portfolio.P90[i])
	}

	// Every goal in the profile has an outlook.
	require.Len(t, plan.Goals, len(profile.Goals))
	for _, goal := range profile.Goals {
		outlook, ok := plan.Goals[goal.Name]
		require.True(t, ok, "missing outlook for %s", goal.Name)
		assert.Equal(t, goal.TargetAmount, outlook.Target)
		assert.GreaterOrEqual(t, outlook.SuccessRate, 0.0)
		assert.LessOrEqual(t, outlook.SuccessRate, 100.0)
	}

	// Debt comparison favours avalanche on interest.
	require.NotNil(t, plan.DebtPayoff)
	assert.LessOrEqual(t, plan.DebtPayoff.Avalanche.TotalInterest, plan.DebtPayoff.Snowball.TotalInterest)
	assert.GreaterOrEqual(t, plan.DebtPayoff.AvalancheSavings, 0.0)

	// Both formatters can render the plan.
	jsonOut, err := output.GetFormatterByName("json").Format(plan)
	require.NoError(t, err)
	var decoded domain.ProfileProjection
	require.NoError(t, json.Unmarshal(jsonOut, &decoded))

	consoleOut, err := output.GetFormatterByName("console").Format(plan)
	require.NoError(t, err)
	assert.Contains(t, string(consoleOut), "DEBT PAYOFF COMPARISON")

	// A repeated run with identical inputs hits the cache.
	cached, err := engine.ProjectProfile(profile, 20, 500)
	require.NoError(t, err)
	assert.Equal(t, plan.Portfolio.MedianFinal, cached.Portfolio.MedianFinal)
}
