package calculation

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
)

// ValidationError reports a profile field the engine cannot work with.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidField(field, msg string) error {
	return &ValidationError{Field: field, Message: msg, Err: finmath.ErrInvalidArgument}
}

// ValidateProfile checks the shape of a profile. It rejects values that
// would make the math meaningless; it does not judge whether a plan is
// affordable.
func ValidateProfile(p *domain.FinancialProfile) error {
	if p == nil {
		return invalidField("profile", "must not be nil")
	}
	if p.Age < 0 {
		return invalidField("age", "must not be negative")
	}
	if p.HorizonYears < 0 {
		return invalidField("horizon_years", "must not be negative")
	}
	if p.LifeExpectancy < 0 {
		return invalidField("life_expectancy", "must not be negative")
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"monthly_income", p.MonthlyIncome},
		{"monthly_expenses", p.MonthlyExpenses},
		{"current_savings", p.CurrentSavings},
		{"existing_monthly_debt_service", p.ExistingMonthlyDebtService},
		{"existing_investments_value", p.ExistingInvestmentsValue},
		{"current_monthly_contribution", p.CurrentMonthlyContribution},
		{"contribution_duration_years", p.ContributionDurationYears},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return invalidField(a.field, "must not be negative")
		}
	}

	minusHundred := decimal.NewFromInt(-100)
	if p.ExpectedAnnualReturnPct.LessThanOrEqual(minusHundred) {
		return invalidField("expected_annual_return_pct", "must be greater than -100")
	}
	if p.ExpectedAnnualInflationPct.LessThanOrEqual(minusHundred) {
		return invalidField("expected_annual_inflation_pct", "must be greater than -100")
	}

	for id := range p.Goals {
		if id == "" {
			return invalidField("goals", "goal id must not be empty")
		}
	}

	return nil
}
