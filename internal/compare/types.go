package compare

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single plan comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                    `json:"scenarioName"`
	Description  string                    `json:"description"`
	Transforms   []string                  `json:"transforms,omitempty"`
	Result       *domain.CalculationResult `json:"-"`

	// Key Metrics
	RequiredMonthlyContribution decimal.Decimal `json:"requiredMonthlyContribution"`
	MonthlyCapacity             decimal.Decimal `json:"monthlyCapacity"`
	TimeRequiredYears           decimal.Decimal `json:"timeRequiredYears"`
	HorizonYears                int             `json:"horizonYears"`
	GoalAchievable              bool            `json:"goalAchievable"`
	HorizonMet                  bool            `json:"horizonMet"`
	BalanceScore                int             `json:"balanceScore"`
	HealthScore                 int             `json:"healthScore"`
	InvestmentGap               decimal.Decimal `json:"investmentGap"`
	ProjectedValue              decimal.Decimal `json:"projectedValue"`

	// Comparison to Base
	RequiredDiffFromBase decimal.Decimal `json:"requiredDiffFromBase"`
	RequiredPctFromBase  decimal.Decimal `json:"requiredPctFromBase"`
	TimeDiffFromBase     decimal.Decimal `json:"timeDiffFromBase"`
	BalanceScoreDiff     int             `json:"balanceScoreDiff"`
	HealthScoreDiff      int             `json:"healthScoreDiff"`
	GapDiffFromBase      decimal.Decimal `json:"gapDiffFromBase"`
}

// ComparisonSet represents a collection of plan comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilePath        string             `json:"profilePath"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a calculation result
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.CalculationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:                name,
		Result:                      result,
		RequiredMonthlyContribution: result.RequiredMonthlyContribution,
		MonthlyCapacity:             result.MonthlyCapacity,
		TimeRequiredYears:           result.TimeRequiredYears,
		HorizonYears:                result.HorizonYears,
		GoalAchievable:              result.GoalAchievable,
		HorizonMet:                  result.HorizonMet,
		BalanceScore:                result.BalanceScore,
		HealthScore:                 result.FinancialHealthScore,
		InvestmentGap:               result.InvestmentGap,
		ProjectedValue:              result.InvestmentProjection.ProjectedValue,
	}
}

// CalculateComparison computes comparison metrics between a plan and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.RequiredDiffFromBase = scenario.RequiredMonthlyContribution.Sub(base.RequiredMonthlyContribution)

	if !base.RequiredMonthlyContribution.IsZero() {
		scenario.RequiredPctFromBase = scenario.RequiredDiffFromBase.
			Div(base.RequiredMonthlyContribution).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.TimeDiffFromBase = scenario.TimeRequiredYears.Sub(base.TimeRequiredYears)
	scenario.BalanceScoreDiff = scenario.BalanceScore - base.BalanceScore
	scenario.HealthScoreDiff = scenario.HealthScore - base.HealthScore
	scenario.GapDiffFromBase = scenario.InvestmentGap.Sub(base.InvestmentGap)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Lowest required contribution
	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.RequiredMonthlyContribution.LessThan(cheapest.RequiredMonthlyContribution) {
			cheapest = alt
		}
	}

	if cheapest != base {
		saving := base.RequiredMonthlyContribution.Sub(cheapest.RequiredMonthlyContribution)
		recommendations = append(recommendations,
			"Lowest Contribution: "+cheapest.ScenarioName+" needs "+saving.StringFixed(0)+
				" less per month than the base plan")
	}

	// Fastest achievable plan
	fastest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.GoalAchievable && alt.TimeRequiredYears.LessThan(fastest.TimeRequiredYears) {
			fastest = alt
		}
	}

	if fastest != base {
		yearsDiff := base.TimeRequiredYears.Sub(fastest.TimeRequiredYears)
		if !base.GoalAchievable {
			recommendations = append(recommendations,
				"Fastest: "+fastest.ScenarioName+" makes the goals reachable in "+
					fmt.Sprintf("%s years", fastest.TimeRequiredYears.String()))
		} else {
			recommendations = append(recommendations,
				"Fastest: "+fastest.ScenarioName+" reaches the goals "+
					fmt.Sprintf("%s years sooner", yearsDiff.String()))
		}
	}

	// Best financial health
	healthiest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.HealthScore > healthiest.HealthScore {
			healthiest = alt
		}
	}

	if healthiest != base {
		recommendations = append(recommendations,
			"Best Health: "+healthiest.ScenarioName+" raises the health score by "+
				fmt.Sprintf("%d points", healthiest.HealthScore-base.HealthScore))
	}

	// Plans that break an achievable goal
	if base.GoalAchievable {
		for _, alt := range compSet.AlternativeResults {
			if !alt.GoalAchievable {
				recommendations = append(recommendations,
					"Warning: "+alt.ScenarioName+" makes the goals unreachable")
			}
		}
	}

	return recommendations
}
