package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
)

var maxSustainabilityRatio = decimal.NewFromInt(999)

func strategyLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "strategy",
		Rules: []Rule[decimal.Decimal]{
			{Label: "Aggressive growth", Match: below(30)},
			{Label: "Balanced", Match: below(45)},
			{Label: "Conservative growth", Match: below(60)},
			{Label: "Capital preservation", Match: always},
		},
	}
}

// LifeStageAnalyzer relates the goal date to the rest of a lifetime.
type LifeStageAnalyzer struct {
	PostGoalReturnPct     decimal.Decimal
	PostGoalExpenseFactor decimal.Decimal
	WithdrawalRatePct     decimal.Decimal
}

// NewLifeStageAnalyzer builds an analyzer from the engine settings.
func NewLifeStageAnalyzer(settings domain.Settings) *LifeStageAnalyzer {
	return &LifeStageAnalyzer{
		PostGoalReturnPct:     settings.PostGoalReturnPct,
		PostGoalExpenseFactor: settings.PostGoalExpenseFactor,
		WithdrawalRatePct:     settings.SafeWithdrawalRatePct,
	}
}

// StrategyFor returns the investment strategy label for the average age of a phase.
func StrategyFor(averageAge decimal.Decimal) string {
	r, _ := strategyLadder().Evaluate(averageAge)
	return r.Label
}

// Analyze returns nil unless age, horizon and life expectancy are usable.
func (la *LifeStageAnalyzer) Analyze(p *domain.FinancialProfile, totalGoalCost decimal.Decimal, projection domain.InvestmentProjection) (*domain.LifeStageInsights, error) {
	if p.Age <= 0 || p.HorizonYears <= 0 || p.LifeExpectancy <= p.Age {
		return nil, nil
	}

	goalAge := p.Age + p.HorizonYears
	postGoalYears := p.LifeExpectancy - goalAge
	if postGoalYears < 0 {
		postGoalYears = 0
	}
	postGoalEnd := goalAge
	if p.LifeExpectancy > goalAge {
		postGoalEnd = p.LifeExpectancy
	}

	sustainability, err := la.sustainability(p, totalGoalCost, projection)
	if err != nil {
		return nil, err
	}

	li := &domain.LifeStageInsights{
		GoalAchievementAge: goalAge,
		PostGoalYears:      postGoalYears,
		TimelineConflict:   p.LifeExpectancy < goalAge,
		PreGoal: domain.LifeStage{
			Name:     "Wealth building",
			StartAge: p.Age,
			EndAge:   goalAge,
			Strategy: StrategyFor(averageAge(p.Age, goalAge)),
		},
		PostGoal: domain.LifeStage{
			Name:     "Post-goal",
			StartAge: goalAge,
			EndAge:   postGoalEnd,
			Strategy: StrategyFor(averageAge(goalAge, postGoalEnd)),
		},
		Sustainability: sustainability,
		Allocation:     SuggestAllocation(p.Age, goalAge),
	}
	li.Insights = lifeStageInsights(p, li)

	return li, nil
}

func averageAge(from, to int) decimal.Decimal {
	return decimal.NewFromInt(int64(from + to)).Div(decimal.NewFromInt(2))
}

// sustainability estimates whether the corpus left after the goals supports
// reduced living expenses under the safe withdrawal rule.
func (la *LifeStageAnalyzer) sustainability(p *domain.FinancialProfile, totalGoalCost decimal.Decimal, projection domain.InvestmentProjection) (domain.PostGoalSustainability, error) {
	years := decimal.NewFromInt(int64(p.HorizonYears))

	monthlyExpenses := p.MonthlyExpenses.Mul(la.PostGoalExpenseFactor)
	required := monthlyExpenses.Mul(decimalTwelve)

	grownSavings, err := finmath.CompoundGrowth(p.CurrentSavings, la.PostGoalReturnPct, years)
	if err != nil {
		return domain.PostGoalSustainability{}, fmt.Errorf("failed to grow savings: %w", err)
	}

	corpus := grownSavings.Add(projection.ProjectedValue).Sub(totalGoalCost)

	surplus := p.MonthlySurplus().Sub(p.CurrentMonthlyContribution)
	if surplus.IsPositive() {
		surplusFV, err := finmath.FutureValueOfAnnuity(surplus, la.PostGoalReturnPct, p.HorizonYears*12)
		if err != nil {
			return domain.PostGoalSustainability{}, fmt.Errorf("failed to accumulate surplus: %w", err)
		}
		corpus = corpus.Add(surplusFV)
	}
	corpus = decimal.Max(decimalZero, corpus)

	sustainable := corpus.Mul(finmath.Pct(la.WithdrawalRatePct))

	ratio := decimalZero
	switch {
	case sustainable.IsPositive():
		ratio = decimal.Min(maxSustainabilityRatio, required.Div(sustainable).Mul(decimalHundred).Round(1))
	case required.IsPositive():
		ratio = maxSustainabilityRatio
	}

	return domain.PostGoalSustainability{
		MonthlyExpenses:         monthlyExpenses.Round(2),
		RequiredAnnualIncome:    required.Round(2),
		CorpusAtGoal:            corpus.Round(2),
		SustainableAnnualIncome: sustainable.Round(2),
		Sustainable:             sustainable.GreaterThanOrEqual(required),
		SustainabilityRatioPct:  ratio,
	}, nil
}

func lifeStageInsights(p *domain.FinancialProfile, li *domain.LifeStageInsights) []domain.Insight {
	insights := []domain.Insight{}

	if li.TimelineConflict {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightWarning,
			Priority: domain.PriorityHigh,
			Title:    "Timeline extends past life expectancy",
			Message: fmt.Sprintf("Your goals would be reached at age %d, after your expected lifespan of %d. Consider a shorter horizon or smaller goals.",
				li.GoalAchievementAge, p.LifeExpectancy),
		})
	}

	if li.PostGoalYears <= 5 {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightWarning,
			Priority: domain.PriorityMedium,
			Title:    "Short post-goal period",
			Message:  fmt.Sprintf("Only %d years remain after reaching your goals. Keep enough liquid savings for later life.", li.PostGoalYears),
		})
	} else if li.PostGoalYears >= 30 {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightInfo,
			Priority: domain.PriorityLow,
			Title:    "Long post-goal life",
			Message:  fmt.Sprintf("You may live %d years after reaching your goals. Plan for long-term income and inflation.", li.PostGoalYears),
		})
	}

	s := li.Sustainability
	if s.Sustainable {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightSuccess,
			Priority: domain.PriorityLow,
			Title:    "Post-goal income is sustainable",
			Message: fmt.Sprintf("A %s corpus supports %s a year against %s of expected expenses.",
				s.CorpusAtGoal.StringFixed(0), s.SustainableAnnualIncome.StringFixed(0), s.RequiredAnnualIncome.StringFixed(0)),
		})
	} else {
		gap := s.RequiredAnnualIncome.Sub(s.SustainableAnnualIncome)
		insights = append(insights, domain.Insight{
			Type:     domain.InsightWarning,
			Priority: domain.PriorityHigh,
			Title:    "Post-goal income gap",
			Message: fmt.Sprintf("Projected wealth after your goals falls %s a year short of expected expenses.",
				gap.StringFixed(0)),
		})
	}

	if p.Age >= 50 {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightInfo,
			Priority: domain.PriorityMedium,
			Title:    "Protect accumulated capital",
			Message:  "Shift gradually towards lower-volatility assets as your goal date approaches.",
		})
	} else if p.Age <= 30 {
		insights = append(insights, domain.Insight{
			Type:     domain.InsightInfo,
			Priority: domain.PriorityLow,
			Title:    "Time is on your side",
			Message:  "A long runway lets you hold more equity and ride out market cycles.",
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Rank() < insights[j].Priority.Rank()
	})
	return insights
}

// SuggestAllocation returns an equity/debt/gold split for each phase.
func SuggestAllocation(age, goalAge int) domain.AllocationSuggestion {
	var pre, post domain.Allocation

	switch {
	case age < 35:
		pre = domain.Allocation{EquityPct: 70, DebtPct: 20, GoldPct: 10, Rationale: "Long runway supports a growth-heavy mix"}
	case age < 50:
		pre = domain.Allocation{EquityPct: 60, DebtPct: 30, GoldPct: 10, Rationale: "Balance growth with stability"}
	default:
		pre = domain.Allocation{EquityPct: 40, DebtPct: 50, GoldPct: 10, Rationale: "Favour stability as retirement nears"}
	}

	if goalAge < 60 {
		post = domain.Allocation{EquityPct: 50, DebtPct: 40, GoldPct: 10, Rationale: "Years of earning remain after the goals"}
	} else {
		post = domain.Allocation{EquityPct: 30, DebtPct: 60, GoldPct: 10, Rationale: "Preserve capital and draw steady income"}
	}

	return domain.AllocationSuggestion{PreGoal: pre, PostGoal: post}
}
