package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compass/financial-planner/internal/cache"
	"github.com/compass/financial-planner/internal/domain"
)

func testProfile() *domain.FinancialProfile {
	return &domain.FinancialProfile{
		Name:             "Alex",
		Age:              32,
		AnnualIncome:     96000,
		OtherIncome:      0,
		IncomeGrowthRate: 3.0,
		MonthlyExpenses:  4500,
		Debts: []domain.Debt{
			{Name: "Credit Card", Balance: 3200, InterestRate: 19.99, MinimumPayment: 90},
			{Name: "Student Loan", Balance: 18500, InterestRate: 5.2, MinimumPayment: 240},
		},
		Accounts: []domain.InvestmentAccount{
			{Name: "TFSA", Balance: 28000, MonthlyContribution: 500},
			{Name: "RRSP", Balance: 41000, MonthlyContribution: 350},
		},
		Goals: []domain.FinancialGoal{
			{Name: "House", TargetAmount: 120000, TargetYear: 2031, CurrentSavings: 22000},
			{Name: "Retirement", TargetAmount: 1200000, TargetYear: 2054, CurrentSavings: 41000},
		},
		RiskTolerance: domain.RiskModerate,
	}
}

// newTestEngine returns an engine with deterministic random sources.
func newTestEngine(seed int64) *ProjectionEngine {
	e := NewProjectionEngine(DefaultReturnModel())
	e.Projector.Sources = seededSources(seed)
	return e
}

func TestProjectProfile_FullSuite(t *testing.T) {
	engine := newTestEngine(42)
	plan, err := engine.ProjectProfile(testProfile(), 10, 300)
	require.NoError(t, err)

	require.NotNil(t, plan.Portfolio)
	assert.Len(t, plan.Portfolio.Years, 11)

	require.Len(t, plan.Goals, 2)
	house, ok := plan.Goals["House"]
	require.True(t, ok)
	assert.Equal(t, 120000.0, house.Target)
	assert.Equal(t, 2031, house.TargetYear)
	require.NotNil(t, house.Projection)
	// 2031 is five years past the base year.
	assert.Len(t, house.Projection.Years, 6)
	assert.Equal(t, house.Projection.SuccessRate, house.SuccessRate)

	retirement := plan.Goals["Retirement"]
	require.NotNil(t, retirement.Projection)
	assert.Len(t, retirement.Projection.Years, 2054-ProjectionBaseYear+1)

	require.NotNil(t, plan.DebtPayoff)
	require.NotNil(t, plan.DebtPayoff.Avalanche)
	require.NotNil(t, plan.DebtPayoff.Snowball)
	assert.Equal(t, domain.StrategyAvalanche, plan.DebtPayoff.Avalanche.Strategy)
	assert.Equal(t, domain.StrategySnowball, plan.DebtPayoff.Snowball.Strategy)
	assert.GreaterOrEqual(t, plan.DebtPayoff.AvalancheSavings, 0.0)
}

func TestProjectProfile_Defaults(t *testing.T) {
	engine := newTestEngine(1)
	profile := testProfile()
	profile.Goals = nil
	profile.Debts = nil

	plan, err := engine.ProjectProfile(profile, 0, 200)
	require.NoError(t, err)

	// Zero years selects the 30-year default.
	assert.Len(t, plan.Portfolio.Years, 31)
	assert.Empty(t, plan.Goals)
	assert.Equal(t, 0, plan.DebtPayoff.Avalanche.MonthsToFree)
	assert.Equal(t, 0.0, plan.DebtPayoff.AvalancheSavings)
}

func TestProjectProfile_Validation(t *testing.T) {
	engine := newTestEngine(1)

	_, err := engine.ProjectProfile(nil, 10, 100)
	assert.Error(t, err)

	_, err = engine.ProjectProfile(testProfile(), -1, 100)
	assert.Error(t, err)

	_, err = engine.ProjectProfile(testProfile(), 10, -5)
	assert.Error(t, err)

	bad := testProfile()
	bad.RiskTolerance = "reckless"
	_, err = engine.ProjectProfile(bad, 10, 100)
	assert.Error(t, err)
}

func TestInvestableSurplus(t *testing.T) {
	testCases := []struct {
		desc          string
		surplus       float64
		contributions float64
		expected      float64
	}{
		{"surplus above contributions", 3500, 850, 2650},
		{"surplus equals contributions", 850, 850, 0},
		{"surplus below contributions", 500, 850, 0},
		{"negative surplus", -200, 850, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, investableSurplus(tc.surplus, tc.contributions))
		})
	}
}

func TestGoalHorizon(t *testing.T) {
	assert.Equal(t, 5, goalHorizon(ProjectionBaseYear+5))
	assert.Equal(t, 1, goalHorizon(ProjectionBaseYear))     // already due
	assert.Equal(t, 1, goalHorizon(ProjectionBaseYear-3))   // past due
	assert.Equal(t, 40, goalHorizon(ProjectionBaseYear+60)) // capped
}

func TestProjectProfile_CacheRoundTrip(t *testing.T) {
	engine := newTestEngine(42)
	mem := cache.NewMemory()
	engine.Cache = mem

	profile := testProfile()
	first, err := engine.ProjectProfile(profile, 5, 200)
	require.NoError(t, err)
	require.Equal(t, 1, mem.Len())

	// Second run is served from the cache and matches exactly.
	second, err := engine.ProjectProfile(profile, 5, 200)
	require.NoError(t, err)
	assert.Equal(t, first.Portfolio.MedianFinal, second.Portfolio.MedianFinal)
	assert.Equal(t, first.DebtPayoff.AvalancheSavings, second.DebtPayoff.AvalancheSavings)
	assert.Equal(t, 1, mem.Len())

	// Different parameters miss the cache.
	_, err = engine.ProjectProfile(profile, 6, 200)
	require.NoError(t, err)
	assert.Equal(t, 2, mem.Len())
}

func TestProfileCacheKey_SensitiveToContent(t *testing.T) {
	a := testProfile()
	b := testProfile()
	assert.Equal(t, profileCacheKey(a, 10, 100), profileCacheKey(b, 10, 100))

	b.MonthlyExpenses += 1
	assert.NotEqual(t, profileCacheKey(a, 10, 100), profileCacheKey(b, 10, 100))
	assert.NotEqual(t, profileCacheKey(a, 10, 100), profileCacheKey(a, 11, 100))
}
