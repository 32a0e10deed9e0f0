package calculation

import (
	"fmt"
	"math"
	"sync"

	"github.com/compass/financial-planner/internal/domain"
)

// maxConcurrentPaths bounds the goroutine pool used for path simulation.
const maxConcurrentPaths = 10

// MonteCarloProjector simulates investment growth under stochastic monthly
// returns and summarizes the outcome distribution as yearly percentile bands.
type MonteCarloProjector struct {
	Returns ReturnModel
	Sources SourceFactory // nil means time-seeded per-path generators
	Logger  Logger
}

// NewMonteCarloProjector creates a projector backed by the given return model.
func NewMonteCarloProjector(returns ReturnModel) *MonteCarloProjector {
	return &MonteCarloProjector{
		Returns: returns,
		Logger:  NopLogger{},
	}
}

// ProjectionInput holds the arguments for one Monte Carlo projection.
type ProjectionInput struct {
	CurrentBalance         float64
	MonthlyContribution    float64
	Years                  int
	Risk                   domain.RiskTolerance
	Target                 float64 // 0 means no target
	InflationRate          float64 // annual, fractional
	SimulationCount        int
	ContributionGrowthRate float64 // annual, fractional
}

// DefaultProjectionInput returns an input with the standard assumptions:
// 2% inflation, 3% annual contribution growth, 5000 simulated paths.
func DefaultProjectionInput() ProjectionInput {
	return ProjectionInput{
		InflationRate:          0.02,
		SimulationCount:        5000,
		ContributionGrowthRate: 0.03,
	}
}

// validate fails fast on out-of-range or non-finite arguments. Degenerate but
// valid inputs (zero years, zero contribution) pass through.
func (in ProjectionInput) validate() error {
	if !isFinite(in.CurrentBalance, in.MonthlyContribution, in.Target, in.InflationRate, in.ContributionGrowthRate) {
		return fmt.Errorf("projection input contains non-finite values")
	}
	if in.CurrentBalance < 0 {
		return fmt.Errorf("current balance cannot be negative, got %.2f", in.CurrentBalance)
	}
	if in.MonthlyContribution < 0 {
		return fmt.Errorf("monthly contribution cannot be negative, got %.2f", in.MonthlyContribution)
	}
	if in.Years < 0 {
		return fmt.Errorf("projection years cannot be negative, got %d", in.Years)
	}
	if in.SimulationCount < 1 {
		return fmt.Errorf("simulation count must be at least 1, got %d", in.SimulationCount)
	}
	if in.Target < 0 {
		return fmt.Errorf("target cannot be negative, got %.2f", in.Target)
	}
	if in.InflationRate <= -1 {
		return fmt.Errorf("inflation rate must be greater than -100%%, got %.4f", in.InflationRate)
	}
	return nil
}

// Project runs the Monte Carlo simulation and aggregates the paths to yearly
// percentile bands in inflation-adjusted terms.
func (p *MonteCarloProjector) Project(in ProjectionInput) (*domain.ProjectionResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	params, err := p.Returns.Lookup(in.Risk)
	if err != nil {
		return nil, err
	}

	// Annualized parameters to a monthly step: the mean scales linearly with
	// time, the std dev with its square root.
	monthlyMean := params.Mean / 12
	monthlyStd := params.StdDev / math.Sqrt(12)
	monthlyInflation := math.Pow(1+in.InflationRate, 1.0/12) - 1

	sources := p.Sources
	if sources == nil {
		sources = seededSources(seedFunc())
	}

	// Simulate paths in parallel. Each path keeps only its yearly samples,
	// already deflated to real terms.
	paths := make([][]float64, in.SimulationCount)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentPaths)
	for i := 0; i < in.SimulationCount; i++ {
		wg.Add(1)
		go func(path int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			paths[path] = simulatePath(sources(path), in, monthlyMean, monthlyStd, monthlyInflation)
		}(i)
	}
	wg.Wait()

	if p.Logger != nil {
		p.Logger.Debugf("simulated %d paths over %d years at %s risk", in.SimulationCount, in.Years, in.Risk)
	}

	return summarizePaths(paths, in), nil
}

// simulatePath evolves one balance path month by month and samples it at
// yearly boundaries in inflation-adjusted terms.
func simulatePath(src NormalSource, in ProjectionInput, monthlyMean, monthlyStd, monthlyInflation float64) []float64 {
	months := in.Years * 12
	samples := make([]float64, 0, in.Years+1)

	balance := in.CurrentBalance
	samples = append(samples, balance) // step 0, deflation factor 1

	deflator := 1.0
	for m := 1; m <= months; m++ {
		monthlyReturn := monthlyMean + monthlyStd*src.NormFloat64()

		// Contributions grow once per elapsed full year.
		completedYears := (m - 1) / 12
		contribution := in.MonthlyContribution * math.Pow(1+in.ContributionGrowthRate, float64(completedYears))

		balance = balance*(1+monthlyReturn) + contribution
		deflator *= 1 + monthlyInflation

		if m%12 == 0 {
			samples = append(samples, balance/deflator)
		}
	}
	return samples
}

// summarizePaths reduces the simulated paths to percentile bands, the median
// final balance, and the target success rate.
func summarizePaths(paths [][]float64, in ProjectionInput) *domain.ProjectionResult {
	points := in.Years + 1
	result := &domain.ProjectionResult{
		Years:  make([]int, points),
		Median: make([]float64, points),
		P10:    make([]float64, points),
		P25:    make([]float64, points),
		P75:    make([]float64, points),
		P90:    make([]float64, points),
		Target: in.Target,
	}

	column := make([]float64, len(paths))
	for year := 0; year < points; year++ {
		for i, path := range paths {
			column[i] = path[year]
		}
		result.Years[year] = year
		result.P10[year] = roundCents(percentile(column, 10))
		result.P25[year] = roundCents(percentile(column, 25))
		result.Median[year] = roundCents(percentile(column, 50))
		result.P75[year] = roundCents(percentile(column, 75))
		result.P90[year] = roundCents(percentile(column, 90))
	}

	finals := make([]float64, len(paths))
	for i, path := range paths {
		finals[i] = path[len(path)-1]
	}
	result.MedianFinal = roundCents(median(finals))

	// No target means automatic success.
	if in.Target > 0 {
		reached := 0
		for _, v := range finals {
			if v >= in.Target {
				reached++
			}
		}
		result.SuccessRate = roundTenth(float64(reached) / float64(len(finals)) * 100)
	} else {
		result.SuccessRate = 100.0
	}
	return result
}
