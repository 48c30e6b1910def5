package calculation

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
)

// RequiredMonthlyContribution returns the additional monthly amount that
// closes the gap between the inflated goal cost and the assets already
// committed, over horizonYears. The projection must have been built for the
// same horizon. The result is rounded to a whole currency unit.
func RequiredMonthlyContribution(
	totalGoalCost, currentSavings decimal.Decimal,
	horizonYears int,
	annualRatePct, annualInflationPct decimal.Decimal,
	projection domain.InvestmentProjection,
) (decimal.Decimal, error) {
	if !totalGoalCost.IsPositive() || horizonYears <= 0 {
		return decimalZero, nil
	}

	years := decimal.NewFromInt(int64(horizonYears))
	futureCost, err := finmath.CompoundGrowth(totalGoalCost, annualInflationPct, years)
	if err != nil {
		return decimalZero, fmt.Errorf("failed to inflate goal cost: %w", err)
	}

	grownSavings, err := finmath.CompoundGrowth(currentSavings, annualRatePct, years)
	if err != nil {
		return decimalZero, fmt.Errorf("failed to grow savings: %w", err)
	}

	gap := futureCost.Sub(grownSavings.Add(projection.ProjectedValue))
	if !gap.IsPositive() {
		return decimalZero, nil
	}

	payment, err := finmath.SolveAnnuityPayment(gap, annualRatePct, horizonYears*12)
	if err != nil {
		return decimalZero, fmt.Errorf("failed to solve monthly contribution: %w", err)
	}
	return payment.Round(0), nil
}
