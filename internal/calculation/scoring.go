package calculation

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	balanceBaseline = 50
	healthBaseline  = 60
)

var (
	emergencyDeepDebtFactor    = decimal.NewFromFloat(0.3)
	emergencyShallowDebtFactor = decimal.NewFromFloat(0.6)
	netWorthCushionRatio       = decimal.NewFromFloat(0.2)
	unreachableRatio           = decimal.NewFromInt(999)
)

// ScoreInputs are the derived figures both scores are built from.
type ScoreInputs struct {
	MonthlyIncome     decimal.Decimal
	CurrentSavings    decimal.Decimal
	ExpenseRatioPct   decimal.Decimal
	SavingsRatePct    decimal.Decimal
	TimeRequiredYears decimal.Decimal
	HorizonYears      int

	PortfolioStrength         int
	ContributionDurationYears decimal.Decimal

	// EmergencyFundMonths is nil when monthly expenses are zero.
	EmergencyFundMonths *decimal.Decimal

	MonthlyEMI decimal.Decimal
	Debt       *domain.DebtMetrics
	LifeStage  *domain.LifeStageInsights
}

// HorizonRatio is time required over horizon. With no horizon a goal is
// either already met (0) or infinitely far.
func (in ScoreInputs) HorizonRatio() decimal.Decimal {
	if in.HorizonYears <= 0 {
		if in.TimeRequiredYears.IsPositive() {
			return unreachableRatio
		}
		return decimalZero
	}
	return in.TimeRequiredYears.Div(decimal.NewFromInt(int64(in.HorizonYears)))
}

// HorizonMet reports whether the goals fit in the chosen horizon.
func (in ScoreInputs) HorizonMet() bool {
	return in.TimeRequiredYears.LessThanOrEqual(decimal.NewFromInt(int64(in.HorizonYears)))
}

func (in ScoreInputs) hasIncome() bool {
	return in.MonthlyIncome.IsPositive()
}

func (in ScoreInputs) hasDebt() bool {
	return in.Debt != nil && in.Debt.TotalOutstanding.IsPositive()
}

// Balance score ladders.

func BalanceExpenseLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "expense_ratio",
		Rules: []Rule[decimal.Decimal]{
			{Label: "<50%", Match: below(50), Delta: 15},
			{Label: "<=60%", Match: atMost(60), Delta: 5},
			{Label: ">70%", Match: above(70), Delta: -20},
		},
	}
}

func BalanceSavingsLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "savings_rate",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">=30%", Match: atLeast(30), Delta: 15},
			{Label: ">=20%", Match: atLeast(20), Delta: 10},
			{Label: "<10%", Match: below(10), Delta: -15},
		},
	}
}

func HorizonAlignmentLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "horizon_alignment",
		Rules: []Rule[decimal.Decimal]{
			{Label: "<=80% of horizon", Match: atMostDec(decimal.NewFromFloat(0.8)), Delta: 15},
			{Label: "<=100% of horizon", Match: atMost(1), Delta: 5},
			{Label: "<=120% of horizon", Match: atMostDec(decimal.NewFromFloat(1.2)), Delta: -10},
			{Label: ">120% of horizon", Match: always, Delta: -20},
		},
	}
}

func BalanceStrengthLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "portfolio_strength",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">=80", Match: atLeast(80), Delta: 20},
			{Label: ">=60", Match: atLeast(60), Delta: 15},
			{Label: ">=40", Match: atLeast(40), Delta: 10},
			{Label: ">=20", Match: atLeast(20), Delta: 5},
		},
	}
}

func ContributionDurationLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "contribution_duration",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">=3y", Match: atLeast(3), Delta: 10},
			{Label: ">=1y", Match: atLeast(1), Delta: 5},
		},
	}
}

// Financial health ladders.

func HealthExpenseLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "expense_ratio",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">70%", Match: above(70), Delta: -15},
			{Label: "<50%", Match: below(50), Delta: 10},
		},
	}
}

func HealthSavingsLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "savings_rate",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">25%", Match: above(25), Delta: 15},
			{Label: ">15%", Match: above(15), Delta: 10},
			{Label: "<10%", Match: below(10), Delta: -15},
		},
	}
}

func HorizonMetLadder() Ladder[bool] {
	return Ladder[bool]{
		Name: "horizon_met",
		Rules: []Rule[bool]{
			{Label: "met", Match: func(met bool) bool { return met }, Delta: 10},
			{Label: "missed", Match: func(met bool) bool { return !met }, Delta: -10},
		},
	}
}

func EmergencyFundLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "emergency_fund",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">=6 months", Match: atLeast(6), Delta: 15},
			{Label: ">=3 months", Match: atLeast(3), Delta: 8},
			{Label: "<1 month", Match: below(1), Delta: -10},
		},
	}
}

func EMIToIncomeLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "emi_to_income",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">40%", Match: above(40), Delta: -20},
			{Label: ">30%", Match: above(30), Delta: -15},
			{Label: ">20%", Match: above(20), Delta: -5},
			{Label: "<10%", Match: below(10), Delta: 5},
		},
	}
}

// DebtToIncomeLadder checks the most severe band first.
func DebtToIncomeLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "debt_to_annual_income",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">3000%", Match: above(3000), Delta: -60},
			{Label: ">2000%", Match: above(2000), Delta: -45},
			{Label: ">1000%", Match: above(1000), Delta: -30},
			{Label: ">500%", Match: above(500), Delta: -20},
			{Label: ">300%", Match: above(300), Delta: -12},
			{Label: ">100%", Match: above(100), Delta: -5},
			{Label: ">0%", Match: above(0), Delta: 2},
		},
	}
}

func LoanCountLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "loan_count",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">4 loans", Match: above(4), Delta: -5},
			{Label: ">2 loans", Match: above(2), Delta: -2},
		},
	}
}

func InterestRateLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "average_interest_rate",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">15%", Match: above(15), Delta: -8},
			{Label: ">12%", Match: above(12), Delta: -5},
			{Label: "<8%", Match: below(8), Delta: 5},
		},
	}
}

func InterestCoverageLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "interest_coverage",
		Rules: []Rule[decimal.Decimal]{
			{Label: "<25%", Match: below(25), Delta: -25},
			{Label: "<50%", Match: below(50), Delta: -15},
			{Label: "<75%", Match: below(75), Delta: -10},
			{Label: "<100%", Match: below(100), Delta: -5},
		},
	}
}

// DebtGrowthLadder applies on top of InterestCoverageLadder when payments do
// not cover accruing interest.
func DebtGrowthLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "debt_growing",
		Rules: []Rule[decimal.Decimal]{
			{Label: "coverage <100%", Match: below(100), Delta: -15},
		},
	}
}

func HealthStrengthLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "portfolio_strength",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">=80", Match: atLeast(80), Delta: 25},
			{Label: ">=60", Match: atLeast(60), Delta: 20},
			{Label: ">=40", Match: atLeast(40), Delta: 15},
			{Label: ">=20", Match: atLeast(20), Delta: 10},
			{Label: ">0", Match: above(0), Delta: 5},
		},
	}
}

func LifeExpectancyLadder() Ladder[bool] {
	return Ladder[bool]{
		Name: "life_expectancy",
		Rules: []Rule[bool]{
			{Label: "timeline past life expectancy", Match: func(conflict bool) bool { return conflict }, Delta: -10},
		},
	}
}

func SustainabilityLadder() Ladder[domain.PostGoalSustainability] {
	ratioAtMost := func(limit int64) func(domain.PostGoalSustainability) bool {
		l := decimal.NewFromInt(limit)
		return func(s domain.PostGoalSustainability) bool { return s.SustainabilityRatioPct.LessThanOrEqual(l) }
	}
	return Ladder[domain.PostGoalSustainability]{
		Name: "post_goal_sustainability",
		Rules: []Rule[domain.PostGoalSustainability]{
			{Label: "sustainable", Match: func(s domain.PostGoalSustainability) bool { return s.Sustainable }, Delta: 7},
			{Label: "ratio <=125%", Match: ratioAtMost(125), Delta: 3},
			{Label: "ratio <=200%", Match: ratioAtMost(200), Delta: 0},
			{Label: "ratio >200%", Match: func(domain.PostGoalSustainability) bool { return true }, Delta: -5},
		},
	}
}

// ScoringEngine turns derived figures into the balance and health scores.
type ScoringEngine struct{}

// NewScoringEngine creates a scoring engine
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// BalanceScore rates how well the plan fits income, savings and horizon.
func (se *ScoringEngine) BalanceScore(in ScoreInputs) domain.ScoreBreakdown {
	sc := newScoreCard(balanceBaseline)

	if in.hasIncome() {
		apply(sc, BalanceExpenseLadder(), in.ExpenseRatioPct)
	}
	apply(sc, BalanceSavingsLadder(), in.SavingsRatePct)
	apply(sc, HorizonAlignmentLadder(), in.HorizonRatio())
	apply(sc, BalanceStrengthLadder(), decimal.NewFromInt(int64(in.PortfolioStrength)))
	apply(sc, ContributionDurationLadder(), in.ContributionDurationYears)

	return sc.breakdown()
}

// HealthScore rates the household's overall financial position.
func (se *ScoringEngine) HealthScore(in ScoreInputs) domain.ScoreBreakdown {
	sc := newScoreCard(healthBaseline)

	if in.hasIncome() {
		apply(sc, HealthExpenseLadder(), in.ExpenseRatioPct)
	}
	apply(sc, HealthSavingsLadder(), in.SavingsRatePct)
	apply(sc, HorizonMetLadder(), in.HorizonMet())

	se.emergencyFund(sc, in)

	if in.hasIncome() {
		apply(sc, EMIToIncomeLadder(), in.MonthlyEMI.Div(in.MonthlyIncome).Mul(decimalHundred))
	}

	if in.hasDebt() {
		se.debt(sc, in)
	}

	apply(sc, HealthStrengthLadder(), decimal.NewFromInt(int64(in.PortfolioStrength)))

	if in.LifeStage != nil {
		apply(sc, LifeExpectancyLadder(), in.LifeStage.TimelineConflict)
		apply(sc, SustainabilityLadder(), in.LifeStage.Sustainability)
	}

	return sc.breakdown()
}

// emergencyFund scores liquid reserves. A positive bonus is discounted when
// outstanding debt eats into savings.
func (se *ScoringEngine) emergencyFund(sc *scoreCard, in ScoreInputs) {
	if in.EmergencyFundMonths == nil {
		return
	}
	l := EmergencyFundLadder()
	r, ok := l.Evaluate(*in.EmergencyFundMonths)
	if !ok {
		return
	}

	points := decimal.NewFromInt(int64(r.Delta))
	label := r.Label
	if points.IsPositive() && in.hasDebt() {
		debt := in.Debt.TotalOutstanding
		netWorth := in.CurrentSavings.Sub(debt)
		switch {
		case netWorth.IsNegative():
			points = points.Mul(emergencyDeepDebtFactor)
			label += " (net worth negative)"
		case netWorth.Div(debt).LessThan(netWorthCushionRatio):
			points = points.Mul(emergencyShallowDebtFactor)
			label += " (thin net worth cushion)"
		}
	}
	sc.add(l.Name, label, points)
}

func (se *ScoringEngine) debt(sc *scoreCard, in ScoreInputs) {
	d := in.Debt

	if in.hasIncome() {
		apply(sc, DebtToIncomeLadder(), d.DebtToAnnualIncomePct)
	} else {
		// No income to service any debt at all.
		worst := DebtToIncomeLadder().Rules[0]
		sc.add("debt_to_annual_income", worst.Label, decimal.NewFromInt(int64(worst.Delta)))
	}

	apply(sc, LoanCountLadder(), decimal.NewFromInt(int64(d.LoanCount)))
	apply(sc, InterestRateLadder(), d.WeightedAverageRatePct)

	if d.InterestCoveragePct != nil {
		apply(sc, InterestCoverageLadder(), *d.InterestCoveragePct)
		apply(sc, DebtGrowthLadder(), *d.InterestCoveragePct)
	}
}
