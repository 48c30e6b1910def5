package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Well-known goal identifiers. Any other non-empty identifier is accepted as a
// user-defined goal.
const (
	GoalHouse     = "house"
	GoalVehicle   = "vehicle"
	GoalTravel    = "travel"
	GoalEducation = "education"
	GoalEmergency = "emergency"
	GoalOther     = "other"
)

// Goal is a single savings target.
type Goal struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
}

// Contributes reports whether the goal counts towards the total goal cost.
func (g Goal) Contributes() bool {
	return g.Enabled && g.Amount.IsPositive()
}

// GoalSet maps goal identifiers to goals.
type GoalSet map[string]Goal

// IDs returns the goal identifiers in sorted order.
func (gs GoalSet) IDs() []string {
	ids := make([]string, 0, len(gs))
	for id := range gs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Loan is one outstanding loan as entered by the user.
type Loan struct {
	Name                  string          `yaml:"name" json:"name"`
	Principal             decimal.Decimal `yaml:"principal" json:"principal"`
	RatePct               decimal.Decimal `yaml:"rate_pct" json:"rate_pct"`
	RemainingTenureMonths int             `yaml:"remaining_tenure_months" json:"remaining_tenure_months"`
	ActualEMI             decimal.Decimal `yaml:"actual_emi" json:"actual_emi"` // zero means "derive from amortization"
}

// LoanPortfolio aggregates all loans of a household.
type LoanPortfolio struct {
	TotalOutstanding       decimal.Decimal `yaml:"total_outstanding" json:"total_outstanding"`
	WeightedAverageRatePct decimal.Decimal `yaml:"weighted_average_rate_pct" json:"weighted_average_rate_pct"`
	LoanCount              int             `yaml:"loan_count" json:"loan_count"`
	ImpliedAnnualInterest  decimal.Decimal `yaml:"implied_annual_interest" json:"implied_annual_interest"`
	TotalMonthlyEMI        decimal.Decimal `yaml:"total_monthly_emi" json:"total_monthly_emi"`
}

// HasDebt reports whether the portfolio carries any outstanding principal.
func (lp *LoanPortfolio) HasDebt() bool {
	return lp != nil && lp.TotalOutstanding.IsPositive()
}

// FinancialProfile is the input snapshot for one calculation. It is treated as
// immutable by the engine; transforms work on deep copies.
type FinancialProfile struct {
	Age            int `yaml:"age" json:"age"`
	HorizonYears   int `yaml:"horizon_years" json:"horizon_years"`
	LifeExpectancy int `yaml:"life_expectancy" json:"life_expectancy"`

	MonthlyIncome              decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	MonthlyExpenses            decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	CurrentSavings             decimal.Decimal `yaml:"current_savings" json:"current_savings"`
	ExistingMonthlyDebtService decimal.Decimal `yaml:"existing_monthly_debt_service" json:"existing_monthly_debt_service"`

	ExpectedAnnualReturnPct    decimal.Decimal `yaml:"expected_annual_return_pct" json:"expected_annual_return_pct"`
	ExpectedAnnualInflationPct decimal.Decimal `yaml:"expected_annual_inflation_pct" json:"expected_annual_inflation_pct"`

	ExistingInvestmentsValue   decimal.Decimal `yaml:"existing_investments_value" json:"existing_investments_value"`
	CurrentMonthlyContribution decimal.Decimal `yaml:"current_monthly_contribution" json:"current_monthly_contribution"`
	ContributionDurationYears  decimal.Decimal `yaml:"contribution_duration_years" json:"contribution_duration_years"`

	// MonthlyCapacity overrides the derived monthly investment capacity.
	MonthlyCapacity *decimal.Decimal `yaml:"monthly_capacity,omitempty" json:"monthly_capacity,omitempty"`

	Goals         GoalSet        `yaml:"goals" json:"goals"`
	Loans         []Loan         `yaml:"loans,omitempty" json:"loans,omitempty"`
	LoanPortfolio *LoanPortfolio `yaml:"loan_portfolio,omitempty" json:"loan_portfolio,omitempty"`
}

// MonthlySurplus is income left after expenses and debt service. It may be negative.
func (p *FinancialProfile) MonthlySurplus() decimal.Decimal {
	return p.MonthlyIncome.Sub(p.MonthlyExpenses).Sub(p.ExistingMonthlyDebtService)
}

// EffectiveMonthlyCapacity returns the monthly amount available for investing
// towards the goals: the explicit override when set, otherwise the
// non-negative monthly surplus.
func (p *FinancialProfile) EffectiveMonthlyCapacity() decimal.Decimal {
	if p.MonthlyCapacity != nil {
		return decimal.Max(decimal.Zero, *p.MonthlyCapacity)
	}
	return decimal.Max(decimal.Zero, p.MonthlySurplus())
}

// DeepCopy returns a copy that shares no maps, slices or pointers with p.
func (p *FinancialProfile) DeepCopy() *FinancialProfile {
	if p == nil {
		return nil
	}
	cp := *p

	if p.MonthlyCapacity != nil {
		capacity := *p.MonthlyCapacity
		cp.MonthlyCapacity = &capacity
	}

	if p.Goals != nil {
		cp.Goals = make(GoalSet, len(p.Goals))
		for id, g := range p.Goals {
			cp.Goals[id] = g
		}
	}

	if p.Loans != nil {
		cp.Loans = append([]Loan(nil), p.Loans...)
	}

	if p.LoanPortfolio != nil {
		lp := *p.LoanPortfolio
		cp.LoanPortfolio = &lp
	}

	return &cp
}
