package calculation

import (
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decimalPtr(v decimal.Decimal) *decimal.Decimal {
	return &v
}

func assertDecimalEqual(t *testing.T, expected, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, expected.Equal(actual), "%s: expected %s, got %s", msg, expected, actual)
}

func findAdjustment(b domain.ScoreBreakdown, factor string) (domain.ScoreAdjustment, bool) {
	for _, a := range b.Adjustments {
		if a.Factor == factor {
			return a, true
		}
	}
	return domain.ScoreAdjustment{}, false
}

// houseProfile is the reference household: 5,000,000 house in 15 years.
func houseProfile() *domain.FinancialProfile {
	return &domain.FinancialProfile{
		Age:                        35,
		HorizonYears:               15,
		LifeExpectancy:             85,
		MonthlyIncome:              d("100000"),
		MonthlyExpenses:            d("50000"),
		CurrentSavings:             d("500000"),
		ExistingMonthlyDebtService: decimal.Zero,
		ExpectedAnnualReturnPct:    d("12"),
		ExpectedAnnualInflationPct: d("6"),
		Goals: domain.GoalSet{
			domain.GoalHouse: {Enabled: true, Amount: d("5000000")},
		},
	}
}

// TestLogger records messages for assertions.
type TestLogger struct {
	DebugMessages []string
	InfoMessages  []string
	WarnMessages  []string
	ErrorMessages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.DebugMessages = append(tl.DebugMessages, format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.InfoMessages = append(tl.InfoMessages, format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.WarnMessages = append(tl.WarnMessages, format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.ErrorMessages = append(tl.ErrorMessages, format)
}
