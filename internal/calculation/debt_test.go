package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compass/financial-planner/internal/domain"
)

func testDebts() []domain.Debt {
	return []domain.Debt{
		{Name: "Credit Card", Type: domain.DebtCreditCard, Balance: 3200, InterestRate: 19.99, MinimumPayment: 90},
		{Name: "Student Loan", Type: domain.DebtStudentLoan, Balance: 18500, InterestRate: 5.2, MinimumPayment: 240},
		{Name: "Car Loan", Type: domain.DebtCarLoan, Balance: 9400, InterestRate: 7.9, MinimumPayment: 310},
	}
}

func TestPayoff_EmptyDebts(t *testing.T) {
	da := NewDebtAmortizer()

	for _, strategy := range []domain.PayoffStrategy{domain.StrategyAvalanche, domain.StrategySnowball} {
		result, err := da.Payoff(nil, 100, strategy)
		require.NoError(t, err)

		assert.Equal(t, strategy, result.Strategy)
		assert.Empty(t, result.Debts)
		assert.Equal(t, 0.0, result.TotalInterest)
		assert.Equal(t, 0, result.MonthsToFree)
		assert.Equal(t, 0.0, result.TotalPaid)
		assert.False(t, result.ReachedCap)
	}
}

// TestPayoff_SingleDebtReferenceSchedule checks the engine against an
// independently derived fixed-minimum amortization of $1000 at 20% APR with a
// $50 monthly payment.
func TestPayoff_SingleDebtReferenceSchedule(t *testing.T) {
	// Reference schedule: accrue one month of interest, then pay min(50,
	// balance), until the balance is negligible.
	balance := 1000.0
	rate := 20.0 / 100 / 12
	refMonths := 0
	refInterest := 0.0
	for balance > 0.01 {
		refMonths++
		interest := balance * rate
		balance += interest
		refInterest += interest
		balance -= math.Min(50, balance)
	}

	da := NewDebtAmortizer()
	result, err := da.Payoff([]domain.Debt{
		{Name: "Card", Balance: 1000, InterestRate: 20, MinimumPayment: 50},
	}, 0, domain.StrategyAvalanche)
	require.NoError(t, err)

	assert.Equal(t, refMonths, result.MonthsToFree)
	require.Len(t, result.Debts, 1)
	assert.Equal(t, refMonths, result.Debts[0].MonthsToPayoff)
	assert.InDelta(t, refInterest, result.TotalInterest, 0.05)
	assert.False(t, result.ReachedCap)
}

func TestPayoff_AvalancheBeatsSnowballOnInterest(t *testing.T) {
	da := NewDebtAmortizer()

	avalanche, err := da.Payoff(testDebts(), 200, domain.StrategyAvalanche)
	require.NoError(t, err)
	snowball, err := da.Payoff(testDebts(), 200, domain.StrategySnowball)
	require.NoError(t, err)

	assert.LessOrEqual(t, avalanche.TotalInterest, snowball.TotalInterest)
}

func TestPayoff_MoreExtraNeverHurts(t *testing.T) {
	da := NewDebtAmortizer()

	var prevInterest = math.Inf(1)
	var prevMonths = math.MaxInt

	for _, extra := range []float64{0, 50, 150, 400, 1000} {
		result, err := da.Payoff(testDebts(), extra, domain.StrategyAvalanche)
		require.NoError(t, err)

		assert.LessOrEqual(t, result.TotalInterest, prevInterest, "extra=%v", extra)
		assert.LessOrEqual(t, result.MonthsToFree, prevMonths, "extra=%v", extra)
		prevInterest = result.TotalInterest
		prevMonths = result.MonthsToFree
	}
}

func TestPayoff_MonthsToFreeIsMaxPerDebt(t *testing.T) {
	da := NewDebtAmortizer()
	result, err := da.Payoff(testDebts(), 250, domain.StrategySnowball)
	require.NoError(t, err)

	maxMonths := 0
	for _, d := range result.Debts {
		if d.MonthsToPayoff > maxMonths {
			maxMonths = d.MonthsToPayoff
		}
	}
	assert.Equal(t, maxMonths, result.MonthsToFree)
}

func TestPayoff_ZeroBalanceDebtIsSkipped(t *testing.T) {
	da := NewDebtAmortizer()
	debts := []domain.Debt{
		{Name: "Paid Off", Balance: 0, InterestRate: 22, MinimumPayment: 50},
		{Name: "Active", Balance: 1200, InterestRate: 10, MinimumPayment: 60},
	}

	result, err := da.Payoff(debts, 100, domain.StrategySnowball)
	require.NoError(t, err)

	require.Len(t, result.Debts, 2)
	assert.Equal(t, 0, result.Debts[0].MonthsToPayoff)
	assert.Equal(t, 0.0, result.Debts[0].InterestPaid)
	assert.Greater(t, result.Debts[1].MonthsToPayoff, 0)
}

func TestPayoff_CapReached(t *testing.T) {
	da := NewDebtAmortizer()
	// Minimum payment below the monthly interest: the balance only grows.
	debts := []domain.Debt{
		{Name: "Runaway", Balance: 100000, InterestRate: 24, MinimumPayment: 10},
	}

	result, err := da.Payoff(debts, 0, domain.StrategyAvalanche)
	require.NoError(t, err)

	assert.True(t, result.ReachedCap)
	assert.Equal(t, 600, result.MonthsToFree)
	assert.Equal(t, 600, result.Debts[0].MonthsToPayoff)
}

func TestPayoff_NeverOverpays(t *testing.T) {
	da := NewDebtAmortizer()
	// Huge minimum against a small balance: only the balance is paid.
	debts := []domain.Debt{
		{Name: "Tiny", Balance: 80, InterestRate: 12, MinimumPayment: 5000},
	}

	result, err := da.Payoff(debts, 0, domain.StrategyAvalanche)
	require.NoError(t, err)

	assert.Equal(t, 1, result.MonthsToFree)
	assert.InDelta(t, 80.8, result.TotalPaid, 0.01) // balance plus one month of 1% interest
}

func TestPayoff_CapCounterintuitiveExtraGoesByPriority(t *testing.T) {
	da := NewDebtAmortizer()
	debts := []domain.Debt{
		{Name: "Low Rate Big", Balance: 5000, InterestRate: 3, MinimumPayment: 50},
		{Name: "High Rate Small", Balance: 500, InterestRate: 25, MinimumPayment: 25},
	}

	result, err := da.Payoff(debts, 500, domain.StrategyAvalanche)
	require.NoError(t, err)

	// The high-rate debt gets the surplus first and clears quickly.
	byName := map[string]domain.DebtPayoffEntry{}
	for _, d := range result.Debts {
		byName[d.Name] = d
	}
	assert.Less(t, byName["High Rate Small"].MonthsToPayoff, byName["Low Rate Big"].MonthsToPayoff)
}

// TestPayoff_SnowballOrderDecidedBeforeMinimums pins the point in the monthly
// cycle where priority is decided: on post-interest balances, before minimum
// payments reshuffle them.
func TestPayoff_SnowballOrderDecidedBeforeMinimums(t *testing.T) {
	da := NewDebtAmortizer()
	// After interest, B (~988) is smaller than A (~1008), so snowball directs
	// the surplus at B — even though A's large minimum shrinks it to ~58
	// before the surplus is paid out.
	debts := []domain.Debt{
		{Name: "A", Balance: 1000, InterestRate: 10, MinimumPayment: 950},
		{Name: "B", Balance: 980, InterestRate: 10, MinimumPayment: 0},
	}

	result, err := da.Payoff(debts, 100, domain.StrategySnowball)
	require.NoError(t, err)

	byName := map[string]domain.DebtPayoffEntry{}
	for _, d := range result.Debts {
		byName[d.Name] = d
	}
	// A's month-1 residual is untouched by the surplus and clears in month 2.
	assert.Equal(t, 2, byName["A"].MonthsToPayoff)
	assert.Greater(t, byName["B"].MonthsToPayoff, byName["A"].MonthsToPayoff)
}

func TestPayoff_InvalidInputs(t *testing.T) {
	da := NewDebtAmortizer()

	_, err := da.Payoff(testDebts(), -1, domain.StrategyAvalanche)
	assert.Error(t, err)

	_, err = da.Payoff(testDebts(), 0, domain.PayoffStrategy("bogus"))
	assert.Error(t, err)

	_, err = da.Payoff([]domain.Debt{{Name: "Bad", Balance: -10, InterestRate: 5, MinimumPayment: 10}}, 0, domain.StrategyAvalanche)
	assert.Error(t, err)

	_, err = da.Payoff([]domain.Debt{{Name: "Bad", Balance: math.NaN(), InterestRate: 5, MinimumPayment: 10}}, 0, domain.StrategySnowball)
	assert.Error(t, err)
}

func TestPayoff_TotalsAreNonNegativeAndRounded(t *testing.T) {
	da := NewDebtAmortizer()
	result, err := da.Payoff(testDebts(), 75, domain.StrategySnowball)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.TotalInterest, 0.0)
	assert.GreaterOrEqual(t, result.TotalPaid, 0.0)
	assert.Equal(t, roundCents(result.TotalInterest), result.TotalInterest)
	assert.Equal(t, roundCents(result.TotalPaid), result.TotalPaid)
	for _, d := range result.Debts {
		assert.GreaterOrEqual(t, d.InterestPaid, 0.0)
		assert.Equal(t, roundCents(d.InterestPaid), d.InterestPaid)
	}
}
