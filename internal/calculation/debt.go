package calculation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/compass/financial-planner/internal/domain"
	"github.com/compass/financial-planner/pkg/money"
)

const (
	// debtEpsilon is the balance (in currency units) below which a debt
	// counts as paid off.
	debtEpsilon = 0.01
	// maxPayoffMonths caps the amortization horizon at 50 years.
	maxPayoffMonths = 600
)

// DebtAmortizer deterministically simulates month-by-month payoff of a debt
// set under a repayment priority strategy.
type DebtAmortizer struct {
	Logger Logger
}

// NewDebtAmortizer creates an amortizer.
func NewDebtAmortizer() *DebtAmortizer {
	return &DebtAmortizer{Logger: NopLogger{}}
}

// debtState is the mutable per-debt bookkeeping for one amortization run.
type debtState struct {
	name            string
	balance         money.Money
	annualRate      float64
	monthlyRate     decimal.Decimal
	minPayment      money.Money
	interestPaid    money.Money
	months          int
	originalBalance money.Money
}

func (d *debtState) active() bool {
	return d.balance.GreaterThan(money.New(debtEpsilon))
}

// Payoff amortizes the debts until every balance drops below one cent or the
// 600-month cap is reached. Minimum payments are made on every debt each
// month; extraMonthly is directed at debts in strategy priority order.
func (da *DebtAmortizer) Payoff(debts []domain.Debt, extraMonthly float64, strategy domain.PayoffStrategy) (*domain.DebtPayoffResult, error) {
	if err := validatePayoffInput(debts, extraMonthly, strategy); err != nil {
		return nil, err
	}
	if len(debts) == 0 {
		return &domain.DebtPayoffResult{
			Strategy: strategy,
			Debts:    []domain.DebtPayoffEntry{},
		}, nil
	}

	states := make([]*debtState, len(debts))
	for i, d := range debts {
		states[i] = &debtState{
			name:            d.Name,
			balance:         money.New(d.Balance),
			annualRate:      d.InterestRate,
			monthlyRate:     money.MonthlyRate(d.InterestRate),
			minPayment:      money.New(d.MinimumPayment),
			originalBalance: money.New(d.Balance),
		}
	}

	totalInterest := money.Zero()
	totalPaid := money.Zero()
	extra := money.New(extraMonthly)
	months := 0

	for anyActive(states) && months < maxPayoffMonths {
		months++

		// A debt active at the start of the month owns this month index; the
		// last one recorded is its payoff month.
		for _, d := range states {
			if d.active() {
				d.months = months
			}
		}

		// 1. Accrue compound interest on outstanding balances.
		for _, d := range states {
			if d.balance.IsPositive() {
				interest := d.balance.MulRate(d.monthlyRate)
				d.balance = d.balance.Add(interest)
				d.interestPaid = d.interestPaid.Add(interest)
				totalInterest = totalInterest.Add(interest)
			}
		}

		// 2. Priority order is decided on post-interest balances, before
		// minimums shuffle them.
		order := priorityOrder(states, strategy)

		// 3. Mandatory minimums on every debt, capped at its balance.
		for _, d := range states {
			if d.balance.IsPositive() {
				payment := d.minPayment.Min(d.balance)
				d.balance = d.balance.Sub(payment)
				totalPaid = totalPaid.Add(payment)
			}
		}

		// 4. Surplus goes to debts strictly in priority order.
		remaining := extra
		for _, d := range order {
			if !remaining.IsPositive() {
				break
			}
			if d.balance.IsPositive() {
				payment := remaining.Min(d.balance)
				d.balance = d.balance.Sub(payment)
				totalPaid = totalPaid.Add(payment)
				remaining = remaining.Sub(payment)
			}
		}
	}

	reachedCap := anyActive(states)
	if reachedCap {
		da.logger().Warnf("debt payoff hit the %d-month cap with balances outstanding", maxPayoffMonths)
	}

	entries := make([]domain.DebtPayoffEntry, len(states))
	for i, d := range states {
		entries[i] = domain.DebtPayoffEntry{
			Name:            d.name,
			OriginalBalance: d.originalBalance.Float64(),
			InterestPaid:    d.interestPaid.Float64(),
			MonthsToPayoff:  d.months,
		}
	}

	return &domain.DebtPayoffResult{
		Strategy:      strategy,
		Debts:         entries,
		TotalInterest: totalInterest.Float64(),
		MonthsToFree:  months,
		TotalPaid:     totalPaid.Float64(),
		ReachedCap:    reachedCap,
	}, nil
}

func (da *DebtAmortizer) logger() Logger {
	if da.Logger == nil {
		return NopLogger{}
	}
	return da.Logger
}

func validatePayoffInput(debts []domain.Debt, extraMonthly float64, strategy domain.PayoffStrategy) error {
	if strategy != domain.StrategyAvalanche && strategy != domain.StrategySnowball {
		return fmt.Errorf("payoff strategy must be %q or %q, got %q", domain.StrategyAvalanche, domain.StrategySnowball, strategy)
	}
	if !isFinite(extraMonthly) || extraMonthly < 0 {
		return fmt.Errorf("extra monthly payment must be a non-negative number, got %v", extraMonthly)
	}
	for _, d := range debts {
		if !isFinite(d.Balance, d.InterestRate, d.MinimumPayment) {
			return fmt.Errorf("debt %q contains non-finite values", d.Name)
		}
		if d.Balance < 0 {
			return fmt.Errorf("debt %q balance cannot be negative, got %.2f", d.Name, d.Balance)
		}
		if d.InterestRate < 0 {
			return fmt.Errorf("debt %q interest rate cannot be negative, got %.2f", d.Name, d.InterestRate)
		}
		if d.MinimumPayment < 0 {
			return fmt.Errorf("debt %q minimum payment cannot be negative, got %.2f", d.Name, d.MinimumPayment)
		}
	}
	return nil
}

func anyActive(states []*debtState) bool {
	for _, d := range states {
		if d.active() {
			return true
		}
	}
	return false
}

// priorityOrder sorts debts for surplus allocation. Avalanche picks the
// highest annual rate first; snowball picks the lowest balance first with
// paid-off debts last.
func priorityOrder(states []*debtState, strategy domain.PayoffStrategy) []*debtState {
	ordered := make([]*debtState, len(states))
	copy(ordered, states)
	switch strategy {
	case domain.StrategyAvalanche:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].annualRate > ordered[j].annualRate
		})
	default: // snowball
		sort.SliceStable(ordered, func(i, j int) bool {
			// Zero balances sort last, as if infinitely large.
			if !ordered[i].balance.IsPositive() {
				return false
			}
			if !ordered[j].balance.IsPositive() {
				return true
			}
			return ordered[i].balance.LessThan(ordered[j].balance.Decimal)
		})
	}
	return ordered
}
