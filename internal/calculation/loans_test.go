package calculation

import (
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateLoans(t *testing.T) {
	loans := []domain.Loan{
		{Name: "car", Principal: d("400000"), RatePct: d("9"), RemainingTenureMonths: 36},
		{Name: "card", Principal: d("100000"), RatePct: d("15"), RemainingTenureMonths: 24, ActualEMI: d("5000")},
	}

	lp, err := AggregateLoans(loans)
	require.NoError(t, err)
	require.NotNil(t, lp)

	assert.Equal(t, 2, lp.LoanCount)
	assertDecimalEqual(t, d("500000"), lp.TotalOutstanding, "total outstanding")
	assertDecimalEqual(t, d("10.2"), lp.WeightedAverageRatePct, "principal-weighted rate")
	assertDecimalEqual(t, d("51000"), lp.ImpliedAnnualInterest, "implied interest")
	assertDecimalEqual(t, d("17720"), lp.TotalMonthlyEMI, "amortized EMI filled in for the car loan")
}

func TestAggregateLoans_Empty(t *testing.T) {
	lp, err := AggregateLoans(nil)
	require.NoError(t, err)
	assert.Nil(t, lp)
}

func TestAggregateLoans_ZeroRate(t *testing.T) {
	lp, err := AggregateLoans([]domain.Loan{{Name: "family", Principal: d("120000"), RemainingTenureMonths: 12}})
	require.NoError(t, err)
	assertDecimalEqual(t, d("10000"), lp.TotalMonthlyEMI, "0% loans repay linearly")
	assert.True(t, lp.WeightedAverageRatePct.IsZero())
}

func TestAggregateLoans_NegativePrincipal(t *testing.T) {
	_, err := AggregateLoans([]domain.Loan{{Name: "bad", Principal: d("-1")}})
	assert.ErrorIs(t, err, finmath.ErrInvalidArgument)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "loans[0].principal", vErr.Field)
}
