package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tightProfile() *domain.FinancialProfile {
	capacity := d("5000")
	return &domain.FinancialProfile{
		Age:                        35,
		HorizonYears:               15,
		LifeExpectancy:             85,
		MonthlyIncome:              d("100000"),
		MonthlyExpenses:            d("50000"),
		CurrentSavings:             d("500000"),
		ExpectedAnnualReturnPct:    d("12"),
		ExpectedAnnualInflationPct: d("6"),
		MonthlyCapacity:            &capacity,
		Goals: domain.GoalSet{
			domain.GoalHouse: {Enabled: true, Amount: d("5000000")},
		},
	}
}

func newTestCompareEngine() *CompareEngine {
	return NewCompareEngine(calculation.NewCalculationEngine(domain.DefaultSettings()))
}

func TestCompareEngine_Templates(t *testing.T) {
	ce := newTestCompareEngine()

	compSet, err := ce.Compare(context.Background(), tightProfile(), CompareOptions{
		Templates: []string{"aggressive", "extend_3yr", "conservative"},
	})
	require.NoError(t, err)

	assert.Equal(t, "base", compSet.BaseScenarioName)
	require.NotNil(t, compSet.BaseResult)
	require.Len(t, compSet.AlternativeResults, 3)

	aggressive := compSet.AlternativeResults[0]
	assert.Equal(t, "aggressive", aggressive.ScenarioName)
	assert.True(t, aggressive.MonthlyCapacity.Equal(d("7500")))
	assert.True(t, aggressive.TimeDiffFromBase.IsNegative(), "more capacity is faster")
	assert.NotEmpty(t, aggressive.Transforms)

	extended := compSet.AlternativeResults[1]
	assert.Equal(t, 18, extended.HorizonYears)
	assert.True(t, extended.RequiredDiffFromBase.IsNegative(), "longer horizon is cheaper")

	conservative := compSet.AlternativeResults[2]
	assert.True(t, conservative.TimeDiffFromBase.IsPositive(), "less capacity is slower")

	assert.NotEmpty(t, compSet.Recommendations)
}

func TestCompareEngine_TransformSpecs(t *testing.T) {
	ce := newTestCompareEngine()

	compSet, err := ce.Compare(context.Background(), tightProfile(), CompareOptions{
		BaseScenarioName: "current",
		Transforms:       []string{"add_savings:amount=1000000", "adjust_inflation:delta=2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "current", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 2)
	assert.Equal(t, "add_savings:amount=1000000", compSet.AlternativeResults[0].ScenarioName)
	assert.True(t, compSet.AlternativeResults[0].RequiredDiffFromBase.IsNegative())
	assert.True(t, compSet.AlternativeResults[1].RequiredDiffFromBase.IsPositive(), "higher inflation costs more")
}

func TestCompareEngine_Errors(t *testing.T) {
	ce := newTestCompareEngine()
	ctx := context.Background()

	_, err := ce.Compare(ctx, tightProfile(), CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = ce.Compare(ctx, tightProfile(), CompareOptions{Transforms: []string{"bogus"}})
	assert.Error(t, err)

	_, err = ce.Compare(ctx, tightProfile(), CompareOptions{Transforms: []string{"extend_horizon:years=-2"}})
	assert.ErrorContains(t, err, "validation failed")

	_, err = ce.Compare(ctx, nil, CompareOptions{})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, tightProfile(), CompareOptions{Templates: []string{"aggressive"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareProfiles(t *testing.T) {
	ce := newTestCompareEngine()

	richer := tightProfile()
	richer.CurrentSavings = d("2000000")

	compSet, err := ce.CompareProfiles(context.Background(),
		NamedProfile{Name: "today", Profile: tightProfile()},
		[]NamedProfile{{Name: "after bonus", Profile: richer}},
	)
	require.NoError(t, err)

	assert.Equal(t, "today", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)
	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "after bonus", alt.ScenarioName)
	assert.True(t, alt.RequiredDiffFromBase.IsNegative())
	assert.True(t, alt.GapDiffFromBase.IsNegative())
}
