package calculation

import (
	"fmt"

	"github.com/compass/financial-planner/internal/domain"
)

// ReturnParameters holds an annualized mean return and volatility pair.
type ReturnParameters struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// ReturnModel maps a risk tolerance to annualized return parameters. It is an
// explicit configuration value rather than a process-wide global so tests can
// substitute synthetic parameters.
type ReturnModel map[domain.RiskTolerance]ReturnParameters

// DefaultReturnModel returns the standard expected-return assumptions by risk
// profile.
func DefaultReturnModel() ReturnModel {
	return ReturnModel{
		domain.RiskConservative: {Mean: 0.05, StdDev: 0.07},
		domain.RiskModerate:     {Mean: 0.07, StdDev: 0.12},
		domain.RiskAggressive:   {Mean: 0.09, StdDev: 0.17},
	}
}

// Lookup resolves the return parameters for a risk tolerance.
func (rm ReturnModel) Lookup(risk domain.RiskTolerance) (ReturnParameters, error) {
	params, ok := rm[risk]
	if !ok {
		return ReturnParameters{}, fmt.Errorf("unknown risk tolerance %q", risk)
	}
	return params, nil
}

// Validate checks that volatility strictly increases with risk for the three
// standard categories.
func (rm ReturnModel) Validate() error {
	conservative, err := rm.Lookup(domain.RiskConservative)
	if err != nil {
		return err
	}
	moderate, err := rm.Lookup(domain.RiskModerate)
	if err != nil {
		return err
	}
	aggressive, err := rm.Lookup(domain.RiskAggressive)
	if err != nil {
		return err
	}
	if conservative.StdDev >= moderate.StdDev || moderate.StdDev >= aggressive.StdDev {
		return fmt.Errorf("volatility must strictly increase with risk: conservative %.4f, moderate %.4f, aggressive %.4f",
			conservative.StdDev, moderate.StdDev, aggressive.StdDev)
	}
	return nil
}
