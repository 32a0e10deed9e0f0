package calculation

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/compass/financial-planner/internal/cache"
	"github.com/compass/financial-planner/internal/domain"
)

// ProjectionBaseYear anchors goal horizons derived from target calendar years.
const ProjectionBaseYear = 2026

const (
	// defaultProfileYears is the portfolio projection horizon when the caller
	// does not specify one.
	defaultProfileYears = 30
	// defaultProfileSims is the per-projection path count for profile runs.
	defaultProfileSims = 3000
	// maxGoalYears caps a goal horizon to avoid runaway extrapolation.
	maxGoalYears = 40
	// maxContributionGrowth caps the portfolio contribution growth rate.
	maxContributionGrowth = 0.05
	// investableShare is the half of the investable surplus directed to the
	// portfolio; the rest is assumed allocated elsewhere.
	investableShare = 0.5
	// debtSurplusShare is the fraction of the income/expense surplus used as
	// the extra monthly debt payment.
	debtSurplusShare = 0.3
	// maxConcurrentRuns bounds the worker pool for one profile projection.
	maxConcurrentRuns = 4
)

// ProjectionEngine composes the Monte Carlo projector and the debt amortizer
// over a full household profile.
type ProjectionEngine struct {
	Projector *MonteCarloProjector
	Amortizer *DebtAmortizer
	Cache     cache.CacheRepository // optional
	Logger    Logger
}

// NewProjectionEngine creates an engine with the given return model and no
// result cache.
func NewProjectionEngine(returns ReturnModel) *ProjectionEngine {
	return &ProjectionEngine{
		Projector: NewMonteCarloProjector(returns),
		Amortizer: NewDebtAmortizer(),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its components. If nil is
// provided, a no-op logger is used.
func (e *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.Projector.Logger = l
	e.Amortizer.Logger = l
}

// ProjectProfile runs the full projection suite for a profile: one portfolio
// projection, one projection per goal, and an avalanche-vs-snowball debt
// comparison. Zero years or simulations select the defaults (30 years, 3000
// paths). The independent runs execute concurrently.
func (e *ProjectionEngine) ProjectProfile(profile *domain.FinancialProfile, years, simulations int) (*domain.ProfileProjection, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if years == 0 {
		years = defaultProfileYears
	}
	if simulations == 0 {
		simulations = defaultProfileSims
	}
	if years < 0 {
		return nil, fmt.Errorf("projection years cannot be negative, got %d", years)
	}
	if simulations < 1 {
		return nil, fmt.Errorf("simulation count must be at least 1, got %d", simulations)
	}

	if e.Cache != nil {
		key := profileCacheKey(profile, years, simulations)
		if raw, ok := e.Cache.Get(key); ok {
			var cached domain.ProfileProjection
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				e.Logger.Debugf("profile projection served from cache")
				return &cached, nil
			}
			e.Logger.Warnf("discarding undecodable cache entry for key %s", key)
		}
	}

	result, err := e.projectProfile(profile, years, simulations)
	if err != nil {
		return nil, err
	}

	if e.Cache != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			e.Logger.Warnf("failed to encode projection for caching: %v", err)
		} else if err := e.Cache.Set(profileCacheKey(profile, years, simulations), string(raw)); err != nil {
			e.Logger.Warnf("failed to cache projection: %v", err)
		}
	}
	return result, nil
}

func (e *ProjectionEngine) projectProfile(profile *domain.FinancialProfile, years, simulations int) (*domain.ProfileProjection, error) {
	surplus := profile.MonthlyIncome() - profile.MonthlyExpenses
	contributions := profile.TotalMonthlyContributions()
	investable := investableSurplus(surplus, contributions)

	portfolioInput := DefaultProjectionInput()
	portfolioInput.CurrentBalance = profile.TotalInvestments()
	portfolioInput.MonthlyContribution = contributions + investable*investableShare
	portfolioInput.Years = years
	portfolioInput.Risk = profile.RiskTolerance
	portfolioInput.SimulationCount = simulations
	portfolioInput.ContributionGrowthRate = math.Min(profile.IncomeGrowthRate/100, maxContributionGrowth)

	// Naive equal split of ongoing contributions across goals.
	goalContribution := contributions / math.Max(float64(len(profile.Goals)), 1)

	extraMonthly := math.Max(0, surplus*debtSurplusShare)
	debts := profile.Debts

	var (
		portfolio *domain.ProjectionResult
		avalanche *domain.DebtPayoffResult
		snowball  *domain.DebtPayoffResult
		goals     = make([]*domain.ProjectionResult, len(profile.Goals))
	)

	tasks := []func() error{
		func() (err error) {
			portfolio, err = e.Projector.Project(portfolioInput)
			return err
		},
		func() (err error) {
			avalanche, err = e.Amortizer.Payoff(debts, extraMonthly, domain.StrategyAvalanche)
			return err
		},
		func() (err error) {
			snowball, err = e.Amortizer.Payoff(debts, extraMonthly, domain.StrategySnowball)
			return err
		},
	}
	for i, goal := range profile.Goals {
		i, goal := i, goal
		input := DefaultProjectionInput()
		input.CurrentBalance = goal.CurrentSavings
		input.MonthlyContribution = goalContribution
		input.Years = goalHorizon(goal.TargetYear)
		input.Risk = profile.RiskTolerance
		input.Target = goal.TargetAmount
		input.SimulationCount = simulations
		tasks = append(tasks, func() (err error) {
			goals[i], err = e.Projector.Project(input)
			return err
		})
	}

	if err := runAll(tasks); err != nil {
		return nil, err
	}

	goalOutlooks := make(map[string]domain.GoalOutlook, len(profile.Goals))
	for i, goal := range profile.Goals {
		goalOutlooks[goal.Name] = domain.GoalOutlook{
			Projection:  goals[i],
			Target:      goal.TargetAmount,
			TargetYear:  goal.TargetYear,
			SuccessRate: goals[i].SuccessRate,
		}
	}

	return &domain.ProfileProjection{
		Portfolio: portfolio,
		Goals:     goalOutlooks,
		DebtPayoff: &domain.DebtComparison{
			Avalanche:        avalanche,
			Snowball:         snowball,
			AvalancheSavings: roundCents(snowball.TotalInterest - avalanche.TotalInterest),
		},
	}, nil
}

// investableSurplus is what remains of the monthly surplus after the existing
// contributions, floored at zero.
func investableSurplus(surplus, contributions float64) float64 {
	if surplus > contributions {
		return surplus - contributions
	}
	return 0
}

// goalHorizon derives a projection horizon from a target calendar year,
// clamped to between 1 and 40 years.
func goalHorizon(targetYear int) int {
	horizon := targetYear - ProjectionBaseYear
	if horizon < 1 {
		horizon = 1
	}
	if horizon > maxGoalYears {
		horizon = maxGoalYears
	}
	return horizon
}

// runAll executes the tasks on a bounded worker pool and returns the first
// error encountered.
func runAll(tasks []func() error) error {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		semaphore = make(chan struct{}, maxConcurrentRuns)
	)
	for _, task := range tasks {
		wg.Add(1)
		go func(task func() error) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := task(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(task)
	}
	wg.Wait()
	return firstErr
}

// profileCacheKey derives a stable cache key from the profile content and the
// run parameters.
func profileCacheKey(profile *domain.FinancialProfile, years, simulations int) string {
	raw, err := json.Marshal(profile)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", profile))
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("plan:%x:%d:%d", sum, years, simulations)
}
