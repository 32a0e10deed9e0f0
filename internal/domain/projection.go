package domain

// PayoffStrategy selects the repayment priority ordering for debt payoff.
type PayoffStrategy string

const (
	// StrategyAvalanche pays the highest interest rate first.
	StrategyAvalanche PayoffStrategy = "avalanche"
	// StrategySnowball pays the lowest balance first.
	StrategySnowball PayoffStrategy = "snowball"
)

// ProjectionResult summarizes the distribution of simulated investment paths
// as yearly percentile bands in inflation-adjusted terms. All monetary values
// are rounded to cents; SuccessRate is rounded to one decimal place.
type ProjectionResult struct {
	Years       []int     `json:"years"`
	Median      []float64 `json:"median"`
	P10         []float64 `json:"p10"` // pessimistic
	P25         []float64 `json:"p25"`
	P75         []float64 `json:"p75"`
	P90         []float64 `json:"p90"` // optimistic
	SuccessRate float64   `json:"success_rate"` // % of paths reaching target
	MedianFinal float64   `json:"median_final"`
	Target      float64   `json:"target"`
}

// DebtPayoffEntry reports the outcome for one debt within a payoff run.
type DebtPayoffEntry struct {
	Name            string  `json:"name"`
	OriginalBalance float64 `json:"original_balance"`
	InterestPaid    float64 `json:"interest_paid"`
	MonthsToPayoff  int     `json:"months_to_payoff"`
}

// DebtPayoffResult is the outcome of amortizing a debt set under one strategy.
// ReachedCap reports that the 600-month simulation cap was hit with balances
// still outstanding; the per-debt months then reflect the truncated history.
type DebtPayoffResult struct {
	Strategy      PayoffStrategy    `json:"strategy"`
	Debts         []DebtPayoffEntry `json:"debts"`
	TotalInterest float64           `json:"total_interest"`
	MonthsToFree  int               `json:"months_to_free"`
	TotalPaid     float64           `json:"total_paid"`
	ReachedCap    bool              `json:"reached_cap"`
}

// GoalOutlook pairs a goal's projection with its target.
type GoalOutlook struct {
	Projection  *ProjectionResult `json:"projection"`
	Target      float64           `json:"target"`
	TargetYear  int               `json:"target_year"`
	SuccessRate float64           `json:"success_rate"`
}

// DebtComparison holds the avalanche and snowball runs side by side.
// AvalancheSavings is snowball interest minus avalanche interest.
type DebtComparison struct {
	Avalanche        *DebtPayoffResult `json:"avalanche"`
	Snowball         *DebtPayoffResult `json:"snowball"`
	AvalancheSavings float64           `json:"savings_vs_snowball"`
}

// ProfileProjection is the full projection suite for one household profile.
type ProfileProjection struct {
	Portfolio  *ProjectionResult      `json:"portfolio"`
	Goals      map[string]GoalOutlook `json:"goals"`
	DebtPayoff *DebtComparison        `json:"debt_payoff"`
}
