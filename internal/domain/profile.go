package domain

// RiskTolerance categorizes how aggressively a household invests.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// GoalType identifies what a financial goal is saving toward.
type GoalType string

const (
	GoalRetirement GoalType = "retirement"
	GoalHouse      GoalType = "house"
	GoalEducation  GoalType = "education"
	GoalEmergency  GoalType = "emergency"
	GoalTravel     GoalType = "travel"
	GoalDebtFree   GoalType = "debt_free"
	GoalCustom     GoalType = "custom"
)

// DebtType identifies the kind of liability.
type DebtType string

const (
	DebtMortgage     DebtType = "mortgage"
	DebtStudentLoan  DebtType = "student_loan"
	DebtCreditCard   DebtType = "credit_card"
	DebtCarLoan      DebtType = "car_loan"
	DebtLineOfCredit DebtType = "line_of_credit"
	DebtOther        DebtType = "other"
)

// AccountType identifies the registration of an investment account.
type AccountType string

const (
	AccountTFSA          AccountType = "tfsa"
	AccountRRSP          AccountType = "rrsp"
	AccountFHSA          AccountType = "fhsa"
	AccountNonRegistered AccountType = "non_registered"
	AccountRESP          AccountType = "resp"
	AccountChecking      AccountType = "checking"
	AccountSavings       AccountType = "savings"
)

// Debt is a single liability with a mandatory monthly minimum payment.
type Debt struct {
	Name           string   `yaml:"name" json:"name"`
	Type           DebtType `yaml:"type" json:"type"`
	Balance        float64  `yaml:"balance" json:"balance"`
	InterestRate   float64  `yaml:"interest_rate" json:"interest_rate"` // annual percent, e.g. 19.99
	MinimumPayment float64  `yaml:"minimum_payment" json:"minimum_payment"`
}

// InvestmentAccount is one investment or savings account with an ongoing contribution.
type InvestmentAccount struct {
	Name                string      `yaml:"name" json:"name"`
	Type                AccountType `yaml:"type" json:"type"`
	Balance             float64     `yaml:"balance" json:"balance"`
	MonthlyContribution float64     `yaml:"monthly_contribution" json:"monthly_contribution"`
}

// FinancialGoal is a target amount wanted by a target calendar year.
type FinancialGoal struct {
	Name           string   `yaml:"name" json:"name"`
	Type           GoalType `yaml:"type" json:"type"`
	TargetAmount   float64  `yaml:"target_amount" json:"target_amount"`
	TargetYear     int      `yaml:"target_year" json:"target_year"`
	Priority       int      `yaml:"priority" json:"priority"` // 1 = highest
	CurrentSavings float64  `yaml:"current_savings" json:"current_savings"`
}

// FinancialProfile is everything the engine needs about one household.
// It is read-only value data for the duration of one engine invocation.
type FinancialProfile struct {
	Name         string `yaml:"name" json:"name"`
	Age          int    `yaml:"age" json:"age"`
	Province     string `yaml:"province" json:"province"`
	FilingStatus string `yaml:"filing_status" json:"filing_status"`

	AnnualIncome     float64 `yaml:"annual_income" json:"annual_income"`
	OtherIncome      float64 `yaml:"other_income" json:"other_income"`
	IncomeGrowthRate float64 `yaml:"income_growth_rate" json:"income_growth_rate"` // expected annual raise, percent

	MonthlyExpenses float64 `yaml:"monthly_expenses" json:"monthly_expenses"`
	HousingCost     float64 `yaml:"housing_cost" json:"housing_cost"` // included in expenses

	Debts         []Debt              `yaml:"debts" json:"debts"`
	Accounts      []InvestmentAccount `yaml:"accounts" json:"accounts"`
	EmergencyFund float64             `yaml:"emergency_fund" json:"emergency_fund"`

	Goals []FinancialGoal `yaml:"goals" json:"goals"`

	RiskTolerance RiskTolerance `yaml:"risk_tolerance" json:"risk_tolerance"`
}

// TotalDebt sums all debt balances.
func (p *FinancialProfile) TotalDebt() float64 {
	var total float64
	for _, d := range p.Debts {
		total += d.Balance
	}
	return total
}

// TotalInvestments sums all account balances.
func (p *FinancialProfile) TotalInvestments() float64 {
	var total float64
	for _, a := range p.Accounts {
		total += a.Balance
	}
	return total
}

// TotalMonthlyContributions sums the ongoing contributions across all accounts.
func (p *FinancialProfile) TotalMonthlyContributions() float64 {
	var total float64
	for _, a := range p.Accounts {
		total += a.MonthlyContribution
	}
	return total
}

// NetWorth is investments plus emergency fund minus debt.
func (p *FinancialProfile) NetWorth() float64 {
	return p.TotalInvestments() + p.EmergencyFund - p.TotalDebt()
}

// MonthlyIncome is combined annual income expressed per month.
func (p *FinancialProfile) MonthlyIncome() float64 {
	return (p.AnnualIncome + p.OtherIncome) / 12
}

// MonthlySavingsRate is the percentage of monthly income left after expenses,
// floored at zero.
func (p *FinancialProfile) MonthlySavingsRate() float64 {
	income := p.MonthlyIncome()
	if income <= 0 {
		return 0
	}
	rate := (income - p.MonthlyExpenses) / income * 100
	if rate < 0 {
		return 0
	}
	return rate
}

// MonthlyDebtPayments sums the minimum payments across all debts.
func (p *FinancialProfile) MonthlyDebtPayments() float64 {
	var total float64
	for _, d := range p.Debts {
		total += d.MinimumPayment
	}
	return total
}
