package calculation

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
)

// AggregateLoans folds individual loans into a portfolio. Loans with no
// recorded EMI are assumed to be paid with the level amortizing payment.
// Returns nil when there are no loans.
func AggregateLoans(loans []domain.Loan) (*domain.LoanPortfolio, error) {
	if len(loans) == 0 {
		return nil, nil
	}

	lp := &domain.LoanPortfolio{LoanCount: len(loans)}
	weightedRate := decimalZero

	for i, loan := range loans {
		if loan.Principal.IsNegative() {
			return nil, &ValidationError{Field: fmt.Sprintf("loans[%d].principal", i), Message: "must not be negative", Err: finmath.ErrInvalidArgument}
		}

		emi := loan.ActualEMI
		if !emi.IsPositive() && loan.Principal.IsPositive() && loan.RemainingTenureMonths > 0 {
			payment, err := finmath.AmortizingPayment(loan.Principal, loan.RatePct, loan.RemainingTenureMonths)
			if err != nil {
				return nil, fmt.Errorf("loan %q: %w", loan.Name, err)
			}
			emi = payment.Round(0)
		}

		lp.TotalOutstanding = lp.TotalOutstanding.Add(loan.Principal)
		lp.TotalMonthlyEMI = lp.TotalMonthlyEMI.Add(emi)
		lp.ImpliedAnnualInterest = lp.ImpliedAnnualInterest.Add(loan.Principal.Mul(finmath.Pct(loan.RatePct)))
		weightedRate = weightedRate.Add(loan.Principal.Mul(loan.RatePct))
	}

	if lp.TotalOutstanding.IsPositive() {
		lp.WeightedAverageRatePct = weightedRate.Div(lp.TotalOutstanding).Round(2)
	}
	lp.ImpliedAnnualInterest = lp.ImpliedAnnualInterest.Round(2)

	return lp, nil
}
