package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/compass/financial-planner/internal/domain"
)

// InputParser handles parsing of household profile files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a financial profile from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.FinancialProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.FinancialProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Unstated risk tolerance defaults to moderate.
	if profile.RiskTolerance == "" {
		profile.RiskTolerance = domain.RiskModerate
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// ValidateProfile validates a loaded profile. The engine assumes these checks
// ran before it is invoked.
func (ip *InputParser) ValidateProfile(profile *domain.FinancialProfile) error {
	if profile.Age < 18 || profile.Age > 100 {
		return fmt.Errorf("age must be between 18 and 100, got %d", profile.Age)
	}
	if err := nonNegative("annual income", profile.AnnualIncome); err != nil {
		return err
	}
	if err := nonNegative("other income", profile.OtherIncome); err != nil {
		return err
	}
	if profile.IncomeGrowthRate < 0 || profile.IncomeGrowthRate > 30 {
		return fmt.Errorf("income growth rate must be between 0%% and 30%%, got %.2f", profile.IncomeGrowthRate)
	}
	if err := nonNegative("monthly expenses", profile.MonthlyExpenses); err != nil {
		return err
	}
	if err := nonNegative("housing cost", profile.HousingCost); err != nil {
		return err
	}
	if err := nonNegative("emergency fund", profile.EmergencyFund); err != nil {
		return err
	}

	switch profile.RiskTolerance {
	case domain.RiskConservative, domain.RiskModerate, domain.RiskAggressive:
	default:
		return fmt.Errorf("risk tolerance must be conservative, moderate, or aggressive, got %q", profile.RiskTolerance)
	}

	for i, debt := range profile.Debts {
		if err := ip.validateDebt(&debt); err != nil {
			return fmt.Errorf("debt %d validation failed: %w", i, err)
		}
	}
	for i, account := range profile.Accounts {
		if err := ip.validateAccount(&account); err != nil {
			return fmt.Errorf("account %d validation failed: %w", i, err)
		}
	}
	for i, goal := range profile.Goals {
		if err := ip.validateGoal(&goal); err != nil {
			return fmt.Errorf("goal %d validation failed: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validateDebt(debt *domain.Debt) error {
	if debt.Name == "" {
		return fmt.Errorf("debt name is required")
	}
	if err := nonNegative("balance", debt.Balance); err != nil {
		return err
	}
	if debt.InterestRate < 0 || debt.InterestRate > 100 {
		return fmt.Errorf("interest rate must be between 0%% and 100%%, got %.2f", debt.InterestRate)
	}
	return nonNegative("minimum payment", debt.MinimumPayment)
}

func (ip *InputParser) validateAccount(account *domain.InvestmentAccount) error {
	if account.Name == "" {
		return fmt.Errorf("account name is required")
	}
	if err := nonNegative("balance", account.Balance); err != nil {
		return err
	}
	return nonNegative("monthly contribution", account.MonthlyContribution)
}

func (ip *InputParser) validateGoal(goal *domain.FinancialGoal) error {
	if goal.Name == "" {
		return fmt.Errorf("goal name is required")
	}
	if err := nonNegative("target amount", goal.TargetAmount); err != nil {
		return err
	}
	if goal.TargetYear < 2025 || goal.TargetYear > 2080 {
		return fmt.Errorf("target year must be between 2025 and 2080, got %d", goal.TargetYear)
	}
	// Priority 0 means unset; otherwise 1 (highest) through 5.
	if goal.Priority < 0 || goal.Priority > 5 {
		return fmt.Errorf("priority must be between 1 and 5, got %d", goal.Priority)
	}
	return nonNegative("current savings", goal.CurrentSavings)
}

func nonNegative(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", field)
	}
	if value < 0 {
		return fmt.Errorf("%s cannot be negative, got %.2f", field, value)
	}
	return nil
}

// CreateExampleProfile creates a starter profile to copy and edit.
func (ip *InputParser) CreateExampleProfile() *domain.FinancialProfile {
	return &domain.FinancialProfile{
		Name:             "Alex",
		Age:              32,
		Province:         "ON",
		FilingStatus:     "single",
		AnnualIncome:     95000,
		OtherIncome:      6000,
		IncomeGrowthRate: 3.0,
		MonthlyExpenses:  4200,
		HousingCost:      1900,
		Debts: []domain.Debt{
			{
				Name:           "Student Loan",
				Type:           domain.DebtStudentLoan,
				Balance:        18500,
				InterestRate:   5.2,
				MinimumPayment: 240,
			},
			{
				Name:           "Credit Card",
				Type:           domain.DebtCreditCard,
				Balance:        3200,
				InterestRate:   19.99,
				MinimumPayment: 90,
			},
		},
		Accounts: []domain.InvestmentAccount{
			{
				Name:                "TFSA — Wealthsimple",
				Type:                domain.AccountTFSA,
				Balance:             28000,
				MonthlyContribution: 500,
			},
			{
				Name:                "RRSP — Employer",
				Type:                domain.AccountRRSP,
				Balance:             41000,
				MonthlyContribution: 350,
			},
		},
		EmergencyFund: 9000,
		Goals: []domain.FinancialGoal{
			{
				Name:           "House Down Payment",
				Type:           domain.GoalHouse,
				TargetAmount:   120000,
				TargetYear:     2031,
				Priority:       1,
				CurrentSavings: 22000,
			},
			{
				Name:           "Retire at 60",
				Type:           domain.GoalRetirement,
				TargetAmount:   1200000,
				TargetYear:     2054,
				Priority:       2,
				CurrentSavings: 41000,
			},
		},
		RiskTolerance: domain.RiskModerate,
	}
}

// WriteExampleProfile writes the example profile as YAML to filename.
func (ip *InputParser) WriteExampleProfile(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleProfile())
	if err != nil {
		return fmt.Errorf("failed to encode example profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
