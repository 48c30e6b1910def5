package calculation

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *CalculationEngine {
	return NewCalculationEngine(domain.DefaultSettings())
}

func TestNewCalculationEngine(t *testing.T) {
	engine := newTestEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Horizon, "Should initialize horizon solver")
	assert.NotNil(t, engine.LifeStage, "Should initialize life stage analyzer")
	assert.NotNil(t, engine.Scoring, "Should initialize scoring engine")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := newTestEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculate_ReferenceHousehold(t *testing.T) {
	engine := newTestEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.Calculate(houseProfile())
	require.NoError(t, err)

	assertDecimalEqual(t, d("5000000"), result.TotalGoalCost, "total goal cost")
	assert.True(t, result.RequiredMonthlyContribution.GreaterThanOrEqual(d("15000")), "required contribution lower bound")
	assert.True(t, result.RequiredMonthlyContribution.LessThanOrEqual(d("30000")), "required contribution upper bound")
	assertDecimalEqual(t, d("50000"), result.MonthlyCapacity, "capacity is the monthly surplus")
	assertDecimalEqual(t, d("15"), result.TimeRequiredYears, "capacity covers the requirement")
	assert.True(t, result.GoalAchievable)
	assert.True(t, result.HorizonMet)

	assertDecimalEqual(t, d("50"), result.SavingsRatePct, "savings rate")
	assertDecimalEqual(t, d("50"), result.ExpenseRatioPct, "expense ratio")
	assertDecimalEqual(t, d("10"), result.EmergencyFundMonths, "emergency months")
	assertDecimalEqual(t, d("5.7"), result.RealReturnPct, "real return")
	assertDecimalEqual(t, d("11982790.97"), result.FutureGoalCost, "inflated goal cost")
	assertDecimalEqual(t, d("4500000"), result.InvestmentGap, "gap is cost less savings")

	assert.Nil(t, result.Debt, "no debt metrics without debt")
	require.NotNil(t, result.LifeStage)
	assert.False(t, result.LifeStage.TimelineConflict)

	assert.Equal(t, result.BalanceBreakdown.Score, result.BalanceScore)
	assert.Equal(t, result.HealthBreakdown.Score, result.FinancialHealthScore)
	assert.NotEmpty(t, logger.InfoMessages, "engine should log the outcome")
}

func TestCalculate_ZeroGoals(t *testing.T) {
	p := houseProfile()
	p.Goals = domain.GoalSet{domain.GoalHouse: {Enabled: false, Amount: d("5000000")}}

	result, err := newTestEngine().Calculate(p)
	require.NoError(t, err)

	assert.True(t, result.TotalGoalCost.IsZero())
	assert.True(t, result.RequiredMonthlyContribution.IsZero())
	assert.True(t, result.TimeRequiredYears.IsZero())
	assert.True(t, result.HorizonMet)

	adj, ok := findAdjustment(result.BalanceBreakdown, "horizon_alignment")
	require.True(t, ok)
	assert.True(t, adj.Points.IsPositive(), "no horizon penalty without goals")
	assert.GreaterOrEqual(t, result.BalanceScore, 50)
}

func TestCalculate_ZeroGoalsIgnoresOtherInputs(t *testing.T) {
	engine := newTestEngine()
	for _, horizon := range []int{0, 1, 30} {
		for _, capacity := range []string{"0", "1000", "1000000"} {
			p := houseProfile()
			p.Goals = nil
			p.HorizonYears = horizon
			c := d(capacity)
			p.MonthlyCapacity = &c

			result, err := engine.Calculate(p)
			require.NoError(t, err)
			assert.True(t, result.RequiredMonthlyContribution.IsZero())
			assert.True(t, result.TimeRequiredYears.IsZero())
		}
	}
}

func TestCalculate_TimelineConflict(t *testing.T) {
	p := houseProfile()
	p.Age = 28
	p.HorizonYears = 30
	p.LifeExpectancy = 55

	engine := newTestEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.Calculate(p)
	require.NoError(t, err)

	require.NotNil(t, result.LifeStage)
	assert.True(t, result.LifeStage.TimelineConflict)
	assert.Equal(t, "Timeline extends past life expectancy", result.LifeStage.Insights[0].Title)

	adj, ok := findAdjustment(result.HealthBreakdown, "life_expectancy")
	require.True(t, ok, "health score should carry the life expectancy penalty")
	assertDecimalEqual(t, d("-10"), adj.Points, "penalty")
	assert.NotEmpty(t, logger.WarnMessages)
}

func TestCalculate_Unreachable(t *testing.T) {
	p := houseProfile()
	zero := decimal.Zero
	p.MonthlyCapacity = &zero

	result, err := newTestEngine().Calculate(p)
	require.NoError(t, err, "an unaffordable goal is not an error")

	assertDecimalEqual(t, d("999"), result.TimeRequiredYears, "sentinel")
	assert.False(t, result.GoalAchievable)
	assert.False(t, result.HorizonMet)
	assert.True(t, result.InvestmentGap.IsPositive())
}

func TestCalculate_SimulatedTimeExceedsHorizon(t *testing.T) {
	p := houseProfile()
	c := d("5000")
	p.MonthlyCapacity = &c

	result, err := newTestEngine().Calculate(p)
	require.NoError(t, err)

	assert.True(t, result.TimeRequiredYears.GreaterThan(d("15")))
	assert.True(t, result.TimeRequiredYears.LessThan(d("50")))
	assert.True(t, result.GoalAchievable)
	assert.False(t, result.HorizonMet)
}

func TestCalculate_Loans(t *testing.T) {
	p := houseProfile()
	p.Loans = []domain.Loan{
		{Name: "car", Principal: d("400000"), RatePct: d("9"), RemainingTenureMonths: 36},
		{Name: "card", Principal: d("100000"), RatePct: d("15"), RemainingTenureMonths: 24, ActualEMI: d("5000")},
	}

	result, err := newTestEngine().Calculate(p)
	require.NoError(t, err)

	assert.Nil(t, p.LoanPortfolio, "input profile must not be mutated")
	assert.True(t, p.ExistingMonthlyDebtService.IsZero(), "input profile must not be mutated")

	require.NotNil(t, result.Debt)
	assert.Equal(t, 2, result.Debt.LoanCount)
	assertDecimalEqual(t, d("17720"), result.Debt.MonthlyEMI, "portfolio EMI used")
	assertDecimalEqual(t, d("32280"), result.MonthlyCapacity, "capacity net of EMI")
	assertDecimalEqual(t, d("17.72"), result.Debt.EMIToIncomePct, "EMI to income")
	assertDecimalEqual(t, d("41.67"), result.Debt.DebtToAnnualIncomePct, "debt to annual income")
	require.NotNil(t, result.Debt.InterestCoveragePct)
	assert.False(t, result.Debt.DebtGrowing)
	assertDecimalEqual(t, d("0"), result.Debt.NetWorth, "savings less outstanding")
}

func TestCalculate_ValidationErrors(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Calculate(nil)
	assert.ErrorIs(t, err, finmath.ErrInvalidArgument)

	p := houseProfile()
	p.HorizonYears = -1
	_, err = engine.Calculate(p)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "horizon_years", vErr.Field)
	assert.True(t, errors.Is(err, finmath.ErrInvalidArgument))

	p = houseProfile()
	p.ContributionDurationYears = d("-2")
	_, err = engine.Calculate(p)
	assert.ErrorIs(t, err, finmath.ErrInvalidArgument, "negative duration")

	p = houseProfile()
	p.Goals[""] = domain.Goal{Enabled: true, Amount: d("1")}
	_, err = engine.Calculate(p)
	assert.ErrorIs(t, err, finmath.ErrInvalidArgument, "malformed goal map")
}

func TestCalculate_ScoreBounds(t *testing.T) {
	engine := newTestEngine()

	incomes := []string{"0", "20000", "100000", "1000000"}
	expenses := []string{"0", "15000", "90000"}
	savings := []string{"0", "50000", "10000000"}
	debts := []string{"0", "300000", "50000000"}

	for _, income := range incomes {
		for _, expense := range expenses {
			for _, saving := range savings {
				for _, debt := range debts {
					p := houseProfile()
					p.MonthlyIncome = d(income)
					p.MonthlyExpenses = d(expense)
					p.CurrentSavings = d(saving)
					p.ExistingInvestmentsValue = d(saving)
					p.CurrentMonthlyContribution = d("25000")
					p.ContributionDurationYears = d("4")
					if debt != "0" {
						p.Loans = []domain.Loan{{Name: "loan", Principal: d(debt), RatePct: d("18"), RemainingTenureMonths: 240, ActualEMI: d("100")}}
					}

					result, err := engine.Calculate(p)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, result.BalanceScore, 0)
					assert.LessOrEqual(t, result.BalanceScore, 100)
					assert.GreaterOrEqual(t, result.FinancialHealthScore, 0)
					assert.LessOrEqual(t, result.FinancialHealthScore, 100)
				}
			}
		}
	}
}

func TestCalculate_JSONRoundTrip(t *testing.T) {
	p := houseProfile()
	p.CurrentMonthlyContribution = d("7500")
	p.ContributionDurationYears = d("2.5")
	p.Loans = []domain.Loan{{Name: "car", Principal: d("400000"), RatePct: d("9"), RemainingTenureMonths: 36}}

	result, err := newTestEngine().Calculate(p)
	require.NoError(t, err)

	first, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded domain.CalculationResult
	require.NoError(t, json.Unmarshal(first, &decoded))

	second, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "numeric fields must survive a round trip unchanged")
}

func TestCalculate_ConcurrentUse(t *testing.T) {
	engine := newTestEngine()
	expected, err := engine.Calculate(houseProfile())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*domain.CalculationResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := engine.Calculate(houseProfile())
			if err == nil {
				results[i] = r
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.True(t, expected.RequiredMonthlyContribution.Equal(r.RequiredMonthlyContribution))
		assert.Equal(t, expected.BalanceScore, r.BalanceScore)
	}
}

func TestEvaluate(t *testing.T) {
	ev, err := newTestEngine().Evaluate(houseProfile())
	require.NoError(t, err)

	assertDecimalEqual(t, d("5000000"), ev.TotalGoalCost, "goal cost")
	assertDecimalEqual(t, d("18508"), ev.RequiredMonthlyContribution, "required contribution")
	assertDecimalEqual(t, d("15"), ev.TimeRequiredYears, "time")
}
