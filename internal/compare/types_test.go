package compare

import (
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	result := &domain.CalculationResult{
		RequiredMonthlyContribution: decimal.NewFromInt(18508),
		MonthlyCapacity:             decimal.NewFromInt(50000),
		TimeRequiredYears:           decimal.NewFromInt(15),
		HorizonYears:                15,
		GoalAchievable:              true,
		HorizonMet:                  true,
		BalanceScore:                80,
		FinancialHealthScore:        75,
		InvestmentGap:               decimal.NewFromInt(4500000),
		InvestmentProjection:        domain.InvestmentProjection{ProjectedValue: decimal.NewFromInt(123)},
	}

	m := calc.CalculateMetrics("base", result)

	assert.Equal(t, "base", m.ScenarioName)
	assert.Same(t, result, m.Result)
	assert.True(t, m.RequiredMonthlyContribution.Equal(decimal.NewFromInt(18508)))
	assert.True(t, m.MonthlyCapacity.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 15, m.HorizonYears)
	assert.True(t, m.GoalAchievable)
	assert.True(t, m.HorizonMet)
	assert.Equal(t, 80, m.BalanceScore)
	assert.Equal(t, 75, m.HealthScore)
	assert.True(t, m.ProjectedValue.Equal(decimal.NewFromInt(123)))
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		RequiredMonthlyContribution: decimal.NewFromInt(20000),
		TimeRequiredYears:           decimal.NewFromInt(15),
		BalanceScore:                60,
		HealthScore:                 70,
		InvestmentGap:               decimal.NewFromInt(1000000),
	}
	alt := ComparisonResult{
		RequiredMonthlyContribution: decimal.NewFromInt(15000),
		TimeRequiredYears:           decimal.NewFromFloat(12.5),
		BalanceScore:                65,
		HealthScore:                 68,
		InvestmentGap:               decimal.NewFromInt(800000),
	}

	got := calc.CalculateComparison(alt, base)

	assert.True(t, got.RequiredDiffFromBase.Equal(decimal.NewFromInt(-5000)))
	assert.True(t, got.RequiredPctFromBase.Equal(decimal.NewFromInt(-25)))
	assert.True(t, got.TimeDiffFromBase.Equal(decimal.NewFromFloat(-2.5)))
	assert.Equal(t, 5, got.BalanceScoreDiff)
	assert.Equal(t, -2, got.HealthScoreDiff)
	assert.True(t, got.GapDiffFromBase.Equal(decimal.NewFromInt(-200000)))
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	got := calc.CalculateComparison(
		ComparisonResult{RequiredMonthlyContribution: decimal.NewFromInt(100)},
		ComparisonResult{},
	)
	assert.True(t, got.RequiredDiffFromBase.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.RequiredPctFromBase.IsZero(), "no percentage against a zero base")
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{
			ScenarioName:                "base",
			RequiredMonthlyContribution: decimal.NewFromInt(20000),
			TimeRequiredYears:           decimal.NewFromInt(20),
			GoalAchievable:              true,
			HealthScore:                 60,
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:                "extend_3yr",
				RequiredMonthlyContribution: decimal.NewFromInt(16000),
				TimeRequiredYears:           decimal.NewFromInt(20),
				GoalAchievable:              true,
				HealthScore:                 62,
			},
			{
				ScenarioName:                "aggressive",
				RequiredMonthlyContribution: decimal.NewFromInt(20000),
				TimeRequiredYears:           decimal.NewFromInt(14),
				GoalAchievable:              true,
				HealthScore:                 70,
			},
			{
				ScenarioName:                "stress",
				RequiredMonthlyContribution: decimal.NewFromInt(30000),
				TimeRequiredYears:           decimal.NewFromInt(999),
				GoalAchievable:              false,
				HealthScore:                 40,
			},
		},
	}

	recs := GenerateRecommendations(compSet)
	require.Len(t, recs, 4)
	assert.Equal(t, "Lowest Contribution: extend_3yr needs 4000 less per month than the base plan", recs[0])
	assert.Equal(t, "Fastest: aggressive reaches the goals 6 years sooner", recs[1])
	assert.Equal(t, "Best Health: aggressive raises the health score by 10 points", recs[2])
	assert.Equal(t, "Warning: stress makes the goals unreachable", recs[3])
}

func TestGenerateRecommendations_UnreachableBase(t *testing.T) {
	compSet := &ComparisonSet{
		BaseResult: &ComparisonResult{
			ScenarioName:      "base",
			TimeRequiredYears: decimal.NewFromInt(999),
		},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "aggressive", TimeRequiredYears: decimal.NewFromFloat(31.5), GoalAchievable: true},
		},
	}

	recs := GenerateRecommendations(compSet)
	require.Len(t, recs, 1)
	assert.Equal(t, "Fastest: aggressive makes the goals reachable in 31.5 years", recs[0])
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	recs := GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}})
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}
