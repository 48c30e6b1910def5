package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func houseProfile() *domain.FinancialProfile {
	return &domain.FinancialProfile{
		Age:                        35,
		HorizonYears:               15,
		LifeExpectancy:             85,
		MonthlyIncome:              d("100000"),
		MonthlyExpenses:            d("50000"),
		CurrentSavings:             d("500000"),
		ExpectedAnnualReturnPct:    d("12"),
		ExpectedAnnualInflationPct: d("6"),
		Goals: domain.GoalSet{
			domain.GoalHouse: {Enabled: true, Amount: d("5000000")},
		},
	}
}

func withCapacity(p *domain.FinancialProfile, amount string) *domain.FinancialProfile {
	c := d(amount)
	p.MonthlyCapacity = &c
	return p
}

func kinds(scenarios []domain.Scenario) []string {
	out := make([]string, len(scenarios))
	for i, s := range scenarios {
		out[i] = s.Kind
	}
	return out
}

func newTestGenerator() *Generator {
	return NewGenerator(calculation.NewCalculationEngine(domain.DefaultSettings()))
}

func TestGenerate_ComfortablePlanOnlyOffersExtension(t *testing.T) {
	scenarios, err := newTestGenerator().Generate(context.Background(), houseProfile())
	require.NoError(t, err)

	// Capacity already covers the requirement, so more or less capacity
	// leaves the time at the horizon and neither scenario is kept.
	require.Equal(t, []string{KindExtended}, kinds(scenarios))
	assert.Equal(t, 18, scenarios[0].HorizonYears)
	assert.True(t, scenarios[0].RequiredMonthlyContribution.LessThan(d("18508")))
	assert.NotEmpty(t, scenarios[0].Description)
}

func TestGenerate_TightPlan(t *testing.T) {
	scenarios, err := newTestGenerator().Generate(context.Background(), withCapacity(houseProfile(), "5000"))
	require.NoError(t, err)

	require.Equal(t, []string{KindAggressive, KindExtended, KindConservative}, kinds(scenarios))

	base, err := calculation.NewCalculationEngine(domain.DefaultSettings()).Evaluate(withCapacity(houseProfile(), "5000"))
	require.NoError(t, err)

	assert.True(t, scenarios[0].MonthlyCapacity.Equal(d("7500")))
	assert.True(t, scenarios[0].TimeRequiredYears.LessThan(base.TimeRequiredYears))
	assert.True(t, scenarios[2].MonthlyCapacity.Equal(d("3750")))
	assert.True(t, scenarios[2].TimeRequiredYears.GreaterThan(base.TimeRequiredYears))
}

func TestGenerate_OptimizedAndBoost(t *testing.T) {
	p := withCapacity(houseProfile(), "5000")
	p.ExistingInvestmentsValue = d("200000")
	p.CurrentMonthlyContribution = d("2000")
	p.ContributionDurationYears = d("2")

	scenarios, err := newTestGenerator().Generate(context.Background(), p)
	require.NoError(t, err)

	assert.Contains(t, kinds(scenarios), KindOptimized)
	assert.Contains(t, kinds(scenarios), KindBoostExisting)
	assert.LessOrEqual(t, len(scenarios), 5)

	for _, s := range scenarios {
		if s.Kind == KindOptimized {
			assert.True(t, s.ExpectedReturnPct.Equal(d("14")))
		}
	}

	assert.True(t, p.ExpectedAnnualReturnPct.Equal(d("12")), "input profile must not be mutated")
	assert.True(t, p.CurrentMonthlyContribution.Equal(d("2000")), "input profile must not be mutated")
}

func TestGenerate_OptimizedNeedsInvestments(t *testing.T) {
	p := withCapacity(houseProfile(), "5000")
	p.ExistingInvestmentsValue = d("100000")

	scenarios, err := newTestGenerator().Generate(context.Background(), p)
	require.NoError(t, err)
	assert.NotContains(t, kinds(scenarios), KindOptimized, "threshold is strictly greater than 100,000")
}

func TestGenerate_FallbackWhenNothingQualifies(t *testing.T) {
	p := houseProfile()
	p.Goals = nil

	scenarios, err := newTestGenerator().Generate(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, []string{KindCurrentPlan}, kinds(scenarios), "improvement is dropped when it does not shorten time")
	assert.True(t, scenarios[0].MonthlyCapacity.Equal(d("50000")))
}

func TestGenerate_FallbackImprovement(t *testing.T) {
	g := newTestGenerator()
	g.Settings.AggressiveCapacityFactor = decimal.NewFromInt(1)
	g.Settings.ConservativeCapacityFactor = decimal.NewFromInt(1)
	g.Settings.HorizonExtensionYears = 0

	scenarios, err := g.Generate(context.Background(), withCapacity(houseProfile(), "5000"))
	require.NoError(t, err)

	require.Equal(t, []string{KindCurrentPlan, KindImprovement}, kinds(scenarios))
	assert.True(t, scenarios[1].MonthlyCapacity.Equal(d("6000")))
	assert.True(t, scenarios[1].TimeRequiredYears.LessThan(scenarios[0].TimeRequiredYears))
	assert.Contains(t, scenarios[1].Description, "20%")
}

func TestGenerate_UsesLoanEMI(t *testing.T) {
	p := houseProfile()
	p.Loans = []domain.Loan{{Name: "car", Principal: d("400000"), RatePct: d("9"), RemainingTenureMonths: 36, ActualEMI: d("45000")}}

	scenarios, err := newTestGenerator().Generate(context.Background(), p)
	require.NoError(t, err)

	for _, s := range scenarios {
		if s.Kind == KindAggressive {
			assert.True(t, s.MonthlyCapacity.Equal(d("7500")), "capacity is scaled net of the loan EMI")
		}
	}
	assert.Contains(t, kinds(scenarios), KindAggressive)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator().Generate(ctx, houseProfile())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerate_InvalidProfile(t *testing.T) {
	p := houseProfile()
	p.Age = -1

	_, err := newTestGenerator().Generate(context.Background(), p)
	assert.ErrorIs(t, err, finmath.ErrInvalidArgument)
}
